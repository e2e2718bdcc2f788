package main

import (
	"strings"
	"unicode"
)

type wordResult struct {
	word        string
	suggestions []string
	correct     bool
}

type wordChecker interface {
	TestSpelling(word string) (bool, error)
	Suggestions(word string) ([]string, error)
}

// splitWords extracts words from free text. Apostrophes and hyphens inside a
// word are kept.
func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	words := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'-")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// checkWords tests each word and collects suggestions for misspellings.
func checkWords(c wordChecker, words []string) ([]wordResult, error) {
	results := make([]wordResult, 0, len(words))
	for _, w := range words {
		ok, err := c.TestSpelling(w)
		if err != nil {
			return nil, err
		}
		r := wordResult{word: w, correct: ok}
		if !ok {
			if r.suggestions, err = c.Suggestions(w); err != nil {
				return nil, err
			}
		}
		results = append(results, r)
	}
	return results, nil
}
