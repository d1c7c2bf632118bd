package lexicon

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

//go:embed data/*.txt
var embeddedData embed.FS

const (
	SourceEmbedded = "embedded"

	lemmasResource     = "lemmas.txt"
	exceptionsResource = "exceptions.txt"
)

// ErrLexiconUnavailable is returned when the lexicon is absent and cannot be fetched.
var ErrLexiconUnavailable = errors.New("lexicon data unavailable")

// Options controls lexicon provisioning.
type Options struct {
	// Source is "embedded" or an http(s) base URL serving lemmas.txt and exceptions.txt.
	Source string
	// DataDir holds lexicon.db. Empty keeps the lexicon in memory only.
	DataDir    string
	Force      bool
	Timeout    time.Duration
	HTTPClient *http.Client
	// Progress receives a progress bar while fetching; nil disables it.
	Progress io.Writer
	Logger   zerolog.Logger
}

// Result describes a provisioning run.
type Result struct {
	Lexicon *Lexicon
	Fetched bool
	Reason  string
}

// Provision returns the lexicon, fetching and storing it first when it is not
// available locally. Every failure wraps ErrLexiconUnavailable.
func Provision(ctx context.Context, opts Options) (*Result, error) {
	if opts.Source == "" {
		opts.Source = SourceEmbedded
	}

	if opts.DataDir == "" {
		lex, err := fetchLexicon(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
		}
		return &Result{Lexicon: lex, Fetched: true, Reason: "no data directory"}, nil
	}

	return provisionStored(ctx, opts)
}

// Embedded returns the lexicon bundled with the binary.
func Embedded() (*Lexicon, error) {
	return fetchLexicon(context.Background(), Options{Source: SourceEmbedded})
}

func fetchLexicon(ctx context.Context, opts Options) (*Lexicon, error) {
	entries, exceptions, err := fetchResources(ctx, opts)
	if err != nil {
		return nil, err
	}
	return New(entries, exceptions), nil
}

// fetchResources downloads both resources concurrently and parses them.
func fetchResources(ctx context.Context, opts Options) ([]Entry, []Exception, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	fetch, err := newFetcher(opts)
	if err != nil {
		return nil, nil, err
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(2,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Fetching lexicon[reset]"),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(opts.Progress)
			}),
		)
	}

	var entries []Entry
	var exceptions []Exception

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := fetch(gctx, lemmasResource)
		if err != nil {
			return err
		}
		entries, err = ParseLemmas(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parse %s: %w", lemmasResource, err)
		}
		if bar != nil {
			bar.Add(1)
		}
		return nil
	})
	g.Go(func() error {
		data, err := fetch(gctx, exceptionsResource)
		if err != nil {
			return err
		}
		exceptions, err = ParseExceptions(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parse %s: %w", exceptionsResource, err)
		}
		if bar != nil {
			bar.Add(1)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("%s contains no lemmas", lemmasResource)
	}
	return entries, exceptions, nil
}

type fetchFunc func(ctx context.Context, name string) ([]byte, error)

func newFetcher(opts Options) (fetchFunc, error) {
	if opts.Source == SourceEmbedded {
		return func(_ context.Context, name string) ([]byte, error) {
			return embeddedData.ReadFile("data/" + name)
		}, nil
	}

	if !strings.HasPrefix(opts.Source, "http://") && !strings.HasPrefix(opts.Source, "https://") {
		return nil, fmt.Errorf("unsupported lexicon source %q", opts.Source)
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	base := strings.TrimSuffix(opts.Source, "/")

	return func(ctx context.Context, name string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/"+name, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %s", name, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}, nil
}
