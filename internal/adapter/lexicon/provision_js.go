//go:build js

package lexicon

import (
	"context"
	"fmt"
)

func provisionStored(_ context.Context, opts Options) (*Result, error) {
	return nil, fmt.Errorf("%w: no persistent store on this platform, data directory %s", ErrLexiconUnavailable, opts.DataDir)
}
