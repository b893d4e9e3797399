package embedding

import (
	"context"
	"sync"
)

// LoadFunc builds a provider. It is called at most once per Shared.
type LoadFunc func(ctx context.Context) (Embedder, error)

// Shared defers construction of a provider until first use and hands the same
// instance to every caller. A failed load is remembered; later calls return
// the same error instead of retrying.
type Shared struct {
	load LoadFunc

	once     sync.Once
	embedder Embedder
	err      error
}

var (
	_ Embedder = (*Shared)(nil)
	_ Loader   = (*Shared)(nil)
)

// NewShared wraps load.
func NewShared(load LoadFunc) *Shared {
	return &Shared{load: load}
}

// Load runs the loader if it has not run yet and reports its outcome.
func (s *Shared) Load(ctx context.Context) error {
	_, err := s.get(ctx)
	return err
}

// Get returns the loaded provider.
func (s *Shared) Get(ctx context.Context) (Embedder, error) {
	return s.get(ctx)
}

func (s *Shared) get(ctx context.Context) (Embedder, error) {
	s.once.Do(func() {
		if s.load == nil {
			s.err = ErrNotLoaded
			return
		}
		s.embedder, s.err = s.load(ctx)
		if s.err == nil && s.embedder == nil {
			s.err = ErrNotLoaded
		}
		if s.err == nil {
			if l, ok := s.embedder.(Loader); ok {
				s.err = l.Load(ctx)
			}
		}
	})
	return s.embedder, s.err
}

// Embed loads the provider on first use and delegates.
func (s *Shared) Embed(ctx context.Context, text string) ([]float32, error) {
	e, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return e.Embed(ctx, text)
}

// EmbedBatch loads the provider on first use and delegates.
func (s *Shared) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return e.EmbedBatch(ctx, texts)
}

// Dimension loads the provider if needed and returns 0 if loading failed.
func (s *Shared) Dimension() int {
	if e := s.loaded(); e != nil {
		return e.Dimension()
	}
	return 0
}

// Model loads the provider if needed and returns "" if loading failed.
func (s *Shared) Model() string {
	if e := s.loaded(); e != nil {
		return e.Model()
	}
	return ""
}

func (s *Shared) loaded() Embedder {
	e, err := s.get(context.Background())
	if err != nil {
		return nil
	}
	return e
}
