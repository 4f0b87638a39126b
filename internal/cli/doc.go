// Package cli renders Hooksmith's terminal output: the per-hook result
// lines of a run and the interactive hook picker.
//
// The picker uses [Bubbletea] and follows its Model-View-Update
// architecture; styling goes through [Lipgloss]. Result lines are plain
// writes so they survive being captured by git.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
