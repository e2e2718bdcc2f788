// Package winspell binds the Windows Spell Checking API (ISpellCheckerFactory)
// through COM using golang.org/x/sys/windows, without cgo.
//
// All COM calls run on one OS thread that joins the multithreaded apartment
// when the module loads. Words added with AddWord go to the user's custom
// dictionary and persist across runs; RemoveWord needs ISpellChecker2, which
// Windows 10 and later provide.
package winspell
