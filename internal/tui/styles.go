package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	Prompt     lipgloss.Style
	Help       lipgloss.Style
}

func defaultStyles() styles {
	bubble := lipgloss.NewStyle().
		Padding(0, 1).
		MarginBottom(1).
		Foreground(lipgloss.Color("#000000"))

	return styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle:   lipgloss.NewStyle().Faint(true),
		UserBubble: bubble.Background(lipgloss.Color("#DCF8C6")),
		BotBubble:  bubble.Background(lipgloss.Color("#F1F0F0")),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Help:       lipgloss.NewStyle().Faint(true),
	}
}
