package matcher

import (
	"math/rand/v2"
	"sync"

	"codechat/internal/port"
)

// NewPicker returns a goroutine-safe picker. Seed 0 uses the global source.
func NewPicker(seed uint64) port.Picker {
	if seed == 0 {
		return globalPicker{}
	}
	return &seededPicker{rng: rand.New(rand.NewPCG(seed, seed))}
}

type globalPicker struct{}

func (globalPicker) Intn(n int) int {
	return rand.IntN(n)
}

type seededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (p *seededPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// Pick returns a uniformly chosen element of options, or "" when empty.
func Pick(p port.Picker, options []string) string {
	switch len(options) {
	case 0:
		return ""
	case 1:
		return options[0]
	}
	return options[p.Intn(len(options))]
}
