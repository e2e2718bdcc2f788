package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/spellcheck"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	langStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	correctStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	misspelledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Underline(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectLang modelState = iota
	stateCheck
)

type interactiveModel struct {
	err      error
	client   *spellcheck.Client
	checker  *spellcheck.Checker
	status   string
	langs    []string
	results  []wordResult
	input    textinput.Model
	selected int
	state    modelState
	loaded   bool
}

func newInteractiveModel(client *spellcheck.Client, preferred string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type a sentence"
	ti.Prompt = "> "
	ti.Width = 60
	return &interactiveModel{
		client: client,
		input:  ti,
		langs:  []string{preferred},
		state:  stateSelectLang,
	}
}

type languagesMsg struct {
	err   error
	langs []string
}

type checkerMsg struct {
	err     error
	checker *spellcheck.Checker
}

// resultsMsg and statusMsg carry the checker they were produced by so that
// replies arriving after the checker was closed are dropped.
type resultsMsg struct {
	err     error
	checker *spellcheck.Checker
	results []wordResult
}

type statusMsg struct {
	err     error
	checker *spellcheck.Checker
	status  string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadLanguages
}

func (m *interactiveModel) loadLanguages() tea.Msg {
	langs, err := m.client.SupportedLanguages()
	return languagesMsg{langs: langs, err: err}
}

// Commands run on their own goroutine, so each one captures its inputs
// while Update still owns the model.

func openCmd(client *spellcheck.Client, language string) tea.Cmd {
	return func() tea.Msg {
		c, err := client.New(language)
		return checkerMsg{checker: c, err: err}
	}
}

func checkCmd(checker *spellcheck.Checker, text string) tea.Cmd {
	words := splitWords(text)
	return func() tea.Msg {
		results, err := checkWords(checker, words)
		return resultsMsg{checker: checker, results: results, err: err}
	}
}

// addCmd adds the first misspelled word of results.
func addCmd(checker *spellcheck.Checker, results []wordResult) tea.Cmd {
	word := ""
	for _, r := range results {
		if !r.correct {
			word = r.word
			break
		}
	}
	return func() tea.Msg {
		if word == "" {
			return statusMsg{checker: checker, status: "nothing to add"}
		}
		if err := checker.AddWord(word); err != nil {
			return statusMsg{checker: checker, err: err}
		}
		return statusMsg{checker: checker, status: fmt.Sprintf("added %q", word)}
	}
}

func (m *interactiveModel) closeChecker() {
	if m.checker != nil {
		m.checker.Dispose()
		m.checker = nil
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closeChecker()
			return m, tea.Quit

		case "q":
			if m.state == stateSelectLang {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectLang && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectLang && m.selected < len(m.langs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectLang:
				if m.loaded && len(m.langs) > 0 {
					return m, openCmd(m.client, m.langs[m.selected])
				}
			case stateCheck:
				return m, checkCmd(m.checker, m.input.Value())
			}

		case "ctrl+a":
			if m.state == stateCheck {
				return m, addCmd(m.checker, m.results)
			}

		case "esc":
			if m.state == stateCheck {
				m.closeChecker()
				m.state = stateSelectLang
				m.results = nil
				m.status = ""
				m.err = nil
				m.input.Reset()
				m.input.Blur()
			}
		}

	case languagesMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selectLanguages(msg.langs)

	case checkerMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.checker = msg.checker
		m.state = stateCheck
		m.input.Focus()
		return m, textinput.Blink

	case resultsMsg:
		if msg.checker != m.checker {
			return m, nil
		}
		m.results, m.err = msg.results, msg.err
		m.status = ""

	case statusMsg:
		if msg.checker != m.checker {
			return m, nil
		}
		m.status, m.err = msg.status, msg.err
		if msg.err == nil {
			return m, checkCmd(m.checker, m.input.Value())
		}
	}

	if m.state == stateCheck {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectLanguages installs langs and moves the cursor to the preferred tag.
func (m *interactiveModel) selectLanguages(langs []string) {
	preferred := m.langs[0]
	m.langs = langs
	m.selected = 0
	for i, l := range langs {
		if l == preferred {
			m.selected = i
			break
		}
	}
}

func (m *interactiveModel) View() string {
	if !m.loaded {
		return "Loading languages..."
	}
	if m.err != nil && m.state == stateSelectLang {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Spell Checker"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectLang:
		b.WriteString("Select a language:\n\n")
		for i, l := range m.langs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + l))
			} else {
				b.WriteString("  " + langStyle.Render(l))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • q quit"))

	case stateCheck:
		b.WriteString(fmt.Sprintf("Checking %s\n\n", langStyle.Render(m.checker.Language())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderResults())
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		} else if m.status != "" {
			b.WriteString(helpStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter check • ctrl+a add first misspelled • esc back • ctrl+c quit"))
	}

	return b.String()
}

func (m *interactiveModel) renderResults() string {
	if len(m.results) == 0 {
		return ""
	}
	var line []string
	var fixes []string
	for _, r := range m.results {
		if r.correct {
			line = append(line, correctStyle.Render(r.word))
			continue
		}
		line = append(line, misspelledStyle.Render(r.word))
		fixes = append(fixes, r.word+": "+suggestionStyle.Render(strings.Join(r.suggestions, ", ")))
	}
	out := strings.Join(line, " ") + "\n"
	if len(fixes) > 0 {
		out += "\n" + strings.Join(fixes, "\n") + "\n"
	}
	return out + "\n"
}

func runInteractive(client *spellcheck.Client, preferred string) error {
	p := tea.NewProgram(newInteractiveModel(client, preferred), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
