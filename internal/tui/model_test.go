package tui

import (
	"strings"
	"testing"

	"codechat/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = Model{}

type echoResolver struct {
	calls []string
}

func (r *echoResolver) Resolve(text string) string {
	r.calls = append(r.calls, text)
	return "echo: " + text
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_SubmitAppendsTurns(t *testing.T) {
	res := &echoResolver{}
	var m tea.Model = NewModel(res)

	m = typeText(m, "python for loop")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	turns := m.(Model).Transcript()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Sender != domain.SenderUser || turns[0].Message != "python for loop" {
		t.Errorf("unexpected user turn %+v", turns[0])
	}
	if turns[1].Sender != domain.SenderBot || turns[1].Message != "echo: python for loop" {
		t.Errorf("unexpected bot turn %+v", turns[1])
	}
	if len(m.(Model).input) != 0 {
		t.Error("expected input to be cleared after submit")
	}
}

func TestModel_BlankInputIgnored(t *testing.T) {
	res := &echoResolver{}
	var m tea.Model = NewModel(res)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "   ")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.(Model).Transcript()) != 0 {
		t.Errorf("expected no turns for blank input, got %d", len(m.(Model).Transcript()))
	}
	if len(res.calls) != 0 {
		t.Errorf("expected resolver not to be called, got %v", res.calls)
	}
}

func TestModel_EditingKeys(t *testing.T) {
	var m tea.Model = NewModel(&echoResolver{})

	m = typeText(m, "hix")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := string(m.(Model).input); got != "hi" {
		t.Errorf("expected hi after backspace, got %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m = typeText(m, "there")
	if got := string(m.(Model).input); got != "hi\nthere" {
		t.Errorf("expected newline in input, got %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if len(m.(Model).input) != 0 {
		t.Error("expected ctrl+u to clear input")
	}
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := NewModel(&echoResolver{}).Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("expected quit command for %v", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %v", key)
		}
	}
}

func TestModel_ViewShowsTranscript(t *testing.T) {
	var m tea.Model = NewModel(&echoResolver{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = typeText(m, "hello")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	for _, want := range []string{"Programming Chatbot", "You: hello", "Bot: echo: hello"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewKeepsLatestTurnsWhenShort(t *testing.T) {
	var m tea.Model = NewModel(&echoResolver{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	for _, q := range []string{"first", "second", "third", "fourth"} {
		m = typeText(m, q)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	view := m.View()
	if !strings.Contains(view, "echo: fourth") {
		t.Error("expected latest reply to be visible")
	}
	if strings.Contains(view, "You: first") {
		t.Error("expected oldest turn to scroll out of view")
	}
}
