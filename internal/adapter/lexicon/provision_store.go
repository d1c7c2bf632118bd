//go:build !js

package lexicon

import (
	"context"
	"fmt"

	"codechat/config"
)

// provisionStored serves the lexicon from <DataDir>/lexicon.db, importing it
// when the store is missing, outdated, empty or a refresh is forced.
func provisionStored(ctx context.Context, opts Options) (*Result, error) {
	if err := config.EnsureDataDir(opts.DataDir); err != nil {
		return nil, fmt.Errorf("%w: failed to create data directory: %v", ErrLexiconUnavailable, err)
	}

	st, err := NewBoltStore(config.LexiconDBPath(opts.DataDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	defer st.Close()

	needsImport, reason, err := st.NeedsImport(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	if opts.Force {
		needsImport, reason = true, "forced"
	}

	if !needsImport {
		lex, err := st.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
		}
		if n, _ := lex.Size(); n > 0 {
			opts.Logger.Debug().Str("data_dir", opts.DataDir).Msg("lexicon loaded from store")
			return &Result{Lexicon: lex}, nil
		}
		reason = "stored lexicon is empty"
	}

	opts.Logger.Info().Str("source", opts.Source).Str("reason", reason).Msg("fetching lexicon")

	entries, exceptions, err := fetchResources(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	if err := st.Import(entries, exceptions, SchemaInfo{Version: CurrentSchemaVersion, Source: opts.Source}); err != nil {
		return nil, fmt.Errorf("%w: failed to store lexicon: %v", ErrLexiconUnavailable, err)
	}

	return &Result{Lexicon: New(entries, exceptions), Fetched: true, Reason: reason}, nil
}
