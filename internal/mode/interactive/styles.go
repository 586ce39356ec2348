// ABOUTME: Lipgloss palette for the chat surface: transcript, input line, suggestion list
// ABOUTME: Built once; the default renderer degrades to plain text when output is not a terminal

package interactive

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeStyles holds the styles used by View.
type ThemeStyles struct {
	Prompt    lipgloss.Style
	User      lipgloss.Style
	Agent     lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Dim       lipgloss.Style
	Bold      lipgloss.Style
}

var (
	stylesOnce sync.Once
	styles     ThemeStyles
)

// Styles returns the shared palette.
func Styles() ThemeStyles {
	stylesOnce.Do(func() {
		styles = ThemeStyles{
			Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
			User:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
			Agent:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
			Selection: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			Dim:       lipgloss.NewStyle().Faint(true),
			Bold:      lipgloss.NewStyle().Bold(true),
		}
	})
	return styles
}
