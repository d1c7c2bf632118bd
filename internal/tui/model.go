// Package tui implements the interactive chat transcript.
package tui

import (
	"strings"
	"time"

	"codechat/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Resolver answers one utterance.
type Resolver interface {
	Resolve(text string) string
}

// Model is the chat screen. The transcript lives only as long as the model.
type Model struct {
	resolver Resolver
	turns    []domain.ChatTurn
	input    []rune
	width    int
	height   int
	styles   styles
	now      func() time.Time
}

func NewModel(resolver Resolver) Model {
	return Model{
		resolver: resolver,
		width:    defaultWidth,
		height:   defaultHeight,
		styles:   defaultStyles(),
		now:      time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if msg.Alt {
			m.input = append(m.input, '\n')
			return m, nil
		}
		m = m.submit()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// submit resolves the pending input. Blank input is ignored.
func (m Model) submit() Model {
	text := string(m.input)
	if strings.TrimSpace(text) == "" {
		return m
	}
	at := m.now()
	reply := m.resolver.Resolve(text)
	m.turns = append(m.turns,
		domain.ChatTurn{Sender: domain.SenderUser, Message: text, At: at},
		domain.ChatTurn{Sender: domain.SenderBot, Message: reply, At: at},
	)
	m.input = nil
	return m
}

// Transcript returns the turns exchanged so far.
func (m Model) Transcript() []domain.ChatTurn {
	return m.turns
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Programming Chatbot"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Ask simple questions about Java, Python and C!"))
	b.WriteString("\n\n")

	footer := m.styles.Prompt.Render("> ") + string(m.input) + "█\n" +
		m.styles.Help.Render("enter send • alt+enter newline • esc quit")

	transcript := m.renderTranscript()
	avail := m.height - lipgloss.Height(b.String()) - lipgloss.Height(footer)
	if lines := strings.Split(transcript, "\n"); avail > 0 && len(lines) > avail {
		transcript = strings.Join(lines[len(lines)-avail:], "\n")
	}

	b.WriteString(transcript)
	b.WriteString(footer)
	return b.String()
}

func (m Model) renderTranscript() string {
	maxWidth := m.width * 7 / 10
	if maxWidth < 10 {
		maxWidth = 10
	}

	var b strings.Builder
	for _, turn := range m.turns {
		if turn.Sender == domain.SenderUser {
			bubble := renderBubble(m.styles.UserBubble, "You: "+turn.Message, maxWidth)
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble))
		} else {
			b.WriteString(renderBubble(m.styles.BotBubble, "Bot: "+turn.Message, maxWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderBubble wraps long messages at maxWidth and keeps short ones snug.
func renderBubble(style lipgloss.Style, text string, maxWidth int) string {
	if lipgloss.Width(text)+style.GetHorizontalFrameSize() > maxWidth {
		style = style.Width(maxWidth)
	}
	return style.Render(text)
}
