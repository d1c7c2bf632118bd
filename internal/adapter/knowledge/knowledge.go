package knowledge

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"codechat/internal/domain"
	"codechat/internal/port"

	"gopkg.in/yaml.v3"
)

//go:embed data/programming.yaml
var builtin embed.FS

const builtinName = "data/programming.yaml"

// ErrInvalidKnowledgeBase is returned when knowledge base data fails validation.
var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// Base is the static, ordered knowledge used by the matchers and the classifier.
type Base struct {
	Topics      []domain.Topic
	Languages   []domain.LanguageProfile
	Comparisons []domain.ComparisonKind
}

type document struct {
	Topics      []topicDoc      `yaml:"topics"`
	Languages   []languageDoc   `yaml:"languages"`
	Comparisons []comparisonDoc `yaml:"comparisons"`
}

type topicDoc struct {
	ID        string   `yaml:"id"`
	Patterns  []string `yaml:"patterns"`
	Responses []string `yaml:"responses"`
}

type languageDoc struct {
	ID          string `yaml:"id"`
	ForLoop     string `yaml:"for_loop"`
	WhileLoop   string `yaml:"while_loop"`
	IfStatement string `yaml:"if_statement"`
	Features    string `yaml:"features"`
	Uses        string `yaml:"uses"`
}

type comparisonDoc struct {
	Kind    string    `yaml:"kind"`
	Signals []string  `yaml:"signals"`
	Pairs   []pairDoc `yaml:"pairs"`
}

type pairDoc struct {
	Languages []string `yaml:"languages"`
	Answer    string   `yaml:"answer"`
}

// Options selects the knowledge base sources.
type Options struct {
	Embedded bool
	Dir      string
	Walker   port.FileWalker
}

// Load assembles the knowledge base from the built-in data and the files
// found under opts.Dir, in that order, and validates the result.
func Load(opts Options) (*Base, error) {
	kb := &Base{}

	if opts.Embedded {
		data, err := builtin.ReadFile(builtinName)
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in knowledge base: %w", err)
		}
		if err := kb.merge(data, builtinName); err != nil {
			return nil, err
		}
	}

	if opts.Dir != "" {
		if opts.Walker == nil {
			return nil, fmt.Errorf("knowledge directory %s given without a file walker", opts.Dir)
		}
		files, err := opts.Walker.Walk(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to walk knowledge directory: %w", err)
		}
		for _, f := range files {
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
			}
			if err := kb.merge(data, f.Path); err != nil {
				return nil, err
			}
		}
	}

	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return kb, nil
}

// Builtin returns the validated built-in knowledge base.
func Builtin() (*Base, error) {
	return Load(Options{Embedded: true})
}

// Parse decodes and validates a single knowledge base document.
func Parse(data []byte) (*Base, error) {
	kb := &Base{}
	if err := kb.merge(data, "input"); err != nil {
		return nil, err
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return kb, nil
}

// merge appends the document's entries. Comparison kinds that already exist
// gain the new signals and pairs.
func (kb *Base) merge(data []byte, name string) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidKnowledgeBase, name, err)
	}

	for _, t := range doc.Topics {
		kb.Topics = append(kb.Topics, domain.Topic{
			ID:        t.ID,
			Patterns:  lowerAll(t.Patterns),
			Responses: t.Responses,
		})
	}

	for _, l := range doc.Languages {
		kb.Languages = append(kb.Languages, domain.LanguageProfile{
			ID:          strings.ToLower(l.ID),
			ForLoop:     l.ForLoop,
			WhileLoop:   l.WhileLoop,
			IfStatement: l.IfStatement,
			Features:    l.Features,
			Uses:        l.Uses,
		})
	}

	for _, c := range doc.Comparisons {
		kind := domain.ComparisonKind{Kind: c.Kind, Signals: lowerAll(c.Signals)}
		for i, p := range c.Pairs {
			if len(p.Languages) != 2 {
				return fmt.Errorf("%w: %s: comparison %q pair %d must name exactly two languages",
					ErrInvalidKnowledgeBase, name, c.Kind, i)
			}
			kind.Pairs = append(kind.Pairs, domain.ComparisonPair{
				Languages: [2]string{strings.ToLower(p.Languages[0]), strings.ToLower(p.Languages[1])},
				Answer:    p.Answer,
			})
		}

		if existing := kb.comparison(c.Kind); existing != nil {
			existing.Signals = append(existing.Signals, kind.Signals...)
			existing.Pairs = append(existing.Pairs, kind.Pairs...)
			continue
		}
		kb.Comparisons = append(kb.Comparisons, kind)
	}

	return nil
}

func (kb *Base) comparison(kind string) *domain.ComparisonKind {
	for i := range kb.Comparisons {
		if kb.Comparisons[i].Kind == kind {
			return &kb.Comparisons[i]
		}
	}
	return nil
}

// Validate checks ids are unique and every entry carries usable text.
func (kb *Base) Validate() error {
	if len(kb.Topics) == 0 {
		return fmt.Errorf("%w: no topics defined", ErrInvalidKnowledgeBase)
	}

	seen := make(map[string]bool)
	for _, t := range kb.Topics {
		switch {
		case t.ID == "":
			return fmt.Errorf("%w: topic without id", ErrInvalidKnowledgeBase)
		case seen[t.ID]:
			return fmt.Errorf("%w: duplicate topic %q", ErrInvalidKnowledgeBase, t.ID)
		case len(t.Patterns) == 0:
			return fmt.Errorf("%w: topic %q has no patterns", ErrInvalidKnowledgeBase, t.ID)
		case len(t.Responses) == 0:
			return fmt.Errorf("%w: topic %q has no responses", ErrInvalidKnowledgeBase, t.ID)
		}
		seen[t.ID] = true
		for _, p := range t.Patterns {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("%w: topic %q has an empty pattern", ErrInvalidKnowledgeBase, t.ID)
			}
		}
		for _, r := range t.Responses {
			if r == "" {
				return fmt.Errorf("%w: topic %q has an empty response", ErrInvalidKnowledgeBase, t.ID)
			}
		}
	}

	langs := make(map[string]bool)
	for _, l := range kb.Languages {
		if l.ID == "" {
			return fmt.Errorf("%w: language without id", ErrInvalidKnowledgeBase)
		}
		if langs[l.ID] {
			return fmt.Errorf("%w: duplicate language %q", ErrInvalidKnowledgeBase, l.ID)
		}
		langs[l.ID] = true
		for _, attr := range []domain.LanguageAttribute{
			domain.AttrForLoop, domain.AttrWhileLoop, domain.AttrIfStatement, domain.AttrFeatures, domain.AttrUses,
		} {
			if l.Attribute(attr) == "" {
				return fmt.Errorf("%w: language %q is missing %s", ErrInvalidKnowledgeBase, l.ID, attr)
			}
		}
	}

	for _, c := range kb.Comparisons {
		if c.Kind == "" {
			return fmt.Errorf("%w: comparison without kind", ErrInvalidKnowledgeBase)
		}
		if len(c.Signals) == 0 {
			return fmt.Errorf("%w: comparison %q has no signals", ErrInvalidKnowledgeBase, c.Kind)
		}
		for i, p := range c.Pairs {
			if p.Languages[0] == "" || p.Languages[1] == "" || p.Languages[0] == p.Languages[1] {
				return fmt.Errorf("%w: comparison %q pair %d needs two distinct languages", ErrInvalidKnowledgeBase, c.Kind, i)
			}
			if p.Answer == "" {
				return fmt.Errorf("%w: comparison %q pair %d has no answer", ErrInvalidKnowledgeBase, c.Kind, i)
			}
		}
	}

	return nil
}

// Topic returns the topic with the given id.
func (kb *Base) Topic(id string) (domain.Topic, bool) {
	for _, t := range kb.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Topic{}, false
}

// TrainingExamples returns one example per topic pattern in knowledge base
// order, each passed through normalize.
func (kb *Base) TrainingExamples(normalize func(string) string) []domain.TrainingExample {
	var examples []domain.TrainingExample
	for _, t := range kb.Topics {
		for _, p := range t.Patterns {
			examples = append(examples, domain.TrainingExample{Text: normalize(p), TopicID: t.ID})
		}
	}
	return examples
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
