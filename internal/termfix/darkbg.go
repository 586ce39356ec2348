// ABOUTME: Fixes the lipgloss background to dark before bubbletea initializes
// ABOUTME: Import with _ ahead of bubbletea so no OSC 10/11 query reaches the terminal

package termfix

import "github.com/charmbracelet/lipgloss"

// An unanswered background query leaves its late reply in the input stream,
// where the chat surface would read it as typed text. Setting the value
// up front skips the query. This package must not import bubbletea.
func init() {
	lipgloss.SetHasDarkBackground(true)
}
