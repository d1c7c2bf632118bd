package port

// Matcher is one rule stage of the resolution cascade.
// Match receives text that is already lowercased; ok is false when the rule does not apply.
type Matcher interface {
	Name() string
	Match(text string) (answer string, ok bool)
}

// Picker chooses an index in [0, n). Implementations must be safe for concurrent use.
type Picker interface {
	Intn(n int) int
}
