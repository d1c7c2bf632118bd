package analyzer

import (
	"strings"
	"testing"

	"codechat/internal/adapter/lexicon"

	"pgregory.net/rapid"
)

func embeddedLexicon(t testing.TB) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Embedded()
	if err != nil {
		t.Fatalf("failed to load embedded lexicon: %v", err)
	}
	return lex
}

func TestTokenizer_Tokenize(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		input    string
		expected []string
	}{
		{"Hello World", []string{"hello", "world"}},
		{"what is python?", []string{"what", "is", "python"}},
		{"hello-world", []string{"hello", "world"}},
		{"  ", nil},
		{"", nil},
		{"?!", nil},
		{"ÜBER Café", []string{"über", "café"}},
	}

	for _, tt := range tests {
		got := tok.Tokenize(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestTokenizer_DecomposedInputIsComposed(t *testing.T) {
	tok := NewTokenizer()

	got := tok.Tokenize("café")
	if len(got) != 1 || got[0] != "café" {
		t.Errorf("expected NFC form café, got %q", got)
	}
}

func TestLemmatizer_Lemmatize(t *testing.T) {
	lem := NewLemmatizer(embeddedLexicon(t))

	tests := []struct {
		input    string
		expected string
	}{
		{"structures", "structure"},
		{"classes", "class"},
		{"dictionaries", "dictionary"},
		{"loops", "loop"},
		{"features", "feature"},
		{"linked", "link"},
		{"is", "be"},
		{"are", "be"},
		{"running", "run"},
		{"easier", "easy"},
		{"men", "man"},
		{"oops", "oops"},
		{"oriented", "oriented"},
		{"data", "data"},
		{"hi", "hi"},
		{"python3", "python3"},
		{"zzzs", "zzzs"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := lem.Lemmatize(tt.input); got != tt.expected {
			t.Errorf("Lemmatize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLemmatizer_POSOrder(t *testing.T) {
	lex := lexicon.New([]lexicon.Entry{
		{POS: lexicon.Verb, Lemma: "tape"},
		{POS: lexicon.Noun, Lemma: "tap"},
	}, nil)
	lem := NewLemmatizer(lex)

	// no noun rule applies to "taped"
	if got := lem.Lemmatize("taped"); got != "tape" {
		t.Errorf("expected tape, got %q", got)
	}
	if got := lem.Lemmatize("taps"); got != "tap" {
		t.Errorf("expected tap, got %q", got)
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(embeddedLexicon(t))

	tests := []struct {
		input    string
		expected string
	}{
		{"What are Data Structures?", "what be data structure"},
		{"Types of data structures", "type of data structure"},
		{"Thank you!", "thank you"},
		{"OOPS concepts", "oops concept"},
		{"stack queue linked list", "stack queue link list"},
		{"", ""},
		{"   \t\n", ""},
	}

	for _, tt := range tests {
		if got := n.Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPropertyNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer(embeddedLexicon(t))

	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.String().Draw(rt, "input")

		first := n.Normalize(input)
		second := n.Normalize(input)
		if first != second {
			rt.Fatalf("Normalize(%q) not deterministic: %q vs %q", input, first, second)
		}
	})
}

func TestPropertyNormalizeShape(t *testing.T) {
	n := NewNormalizer(embeddedLexicon(t))

	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.StringMatching(`[A-Za-z ,.?!]{0,40}`).Draw(rt, "input")
		out := n.Normalize(input)

		if out != strings.ToLower(out) {
			rt.Fatalf("expected lowercase output, got %q", out)
		}
		if strings.Contains(out, "  ") || strings.TrimSpace(out) != out {
			rt.Fatalf("expected single-space joined output, got %q", out)
		}
		if strings.TrimSpace(input) == "" && out != "" {
			rt.Fatalf("expected empty output for blank input %q, got %q", input, out)
		}
	})
}
