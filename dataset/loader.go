package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/audiosim/blobstore"
	"github.com/hupe1980/audiosim/codec"
)

// DefaultDocumentSuffix is the file suffix the feature extractor gives its
// per-file analysis documents.
const DefaultDocumentSuffix = "_analysis.json"

// Loader materializes a Table from a blobstore of analysis documents.
// Documents are decoded and flattened concurrently; the resulting table's row
// order follows the sorted blob names, so the same store contents always
// produce the same table.
type Loader struct {
	store       blobstore.BlobStore
	codec       codec.Codec
	classes     []string
	suffix      string
	concurrency int
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCodec sets the codec used to decode documents (default codec.Default).
func WithCodec(c codec.Codec) LoaderOption {
	return func(l *Loader) {
		if c == nil {
			c = codec.Default
		}
		l.codec = c
	}
}

// WithClasses sets which feature classes become table columns
// (default "stats").
func WithClasses(classes ...string) LoaderOption {
	return func(l *Loader) {
		l.classes = classes
	}
}

// WithDocumentSuffix overrides the document file suffix.
func WithDocumentSuffix(suffix string) LoaderOption {
	return func(l *Loader) {
		l.suffix = suffix
	}
}

// WithConcurrency sets how many documents are fetched and decoded in
// parallel (default 8).
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithRateLimiter throttles blob fetches, e.g. to stay under an object
// store's request quota. Nil disables throttling.
func WithRateLimiter(limiter *rate.Limiter) LoaderOption {
	return func(l *Loader) {
		l.limiter = limiter
	}
}

// WithLoaderLogger sets the logger for load progress (default discards).
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader reading from store.
func NewLoader(store blobstore.BlobStore, optFns ...LoaderOption) *Loader {
	l := &Loader{
		store:       store,
		codec:       codec.Default,
		classes:     []string{"stats"},
		suffix:      DefaultDocumentSuffix,
		concurrency: 8,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(l)
		}
	}
	return l
}

// Load lists all analysis documents under prefix and assembles them into a
// Table. A malformed document fails the whole load with the blob named; a
// dataset with silently dropped rows would corrupt every ranking computed
// from it.
func (l *Loader) Load(ctx context.Context, prefix string) (*Table, error) {
	names, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	var docs []string
	for _, name := range names {
		if strings.HasSuffix(name, l.suffix) {
			docs = append(docs, name)
		}
	}
	sort.Strings(docs)

	records := make([]Record, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, name := range docs {
		g.Go(func() error {
			if l.limiter != nil {
				if err := l.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			rec, err := l.loadOne(gctx, name)
			if err != nil {
				return fmt.Errorf("document %q: %w", name, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, err := NewTable(records)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("dataset loaded",
		"documents", len(docs),
		"rows", table.Len(),
		"columns", len(table.Schema()),
	)
	return table, nil
}

func (l *Loader) loadOne(ctx context.Context, name string) (Record, error) {
	blob, err := l.store.Open(ctx, name)
	if err != nil {
		return Record{}, err
	}
	defer blob.Close()

	data, err := blob.Bytes()
	if err != nil {
		return Record{}, err
	}

	var doc map[string]any
	if err := l.codec.Unmarshal(data, &doc); err != nil {
		return Record{}, err
	}
	return FlattenRecord(doc, l.classes...)
}
