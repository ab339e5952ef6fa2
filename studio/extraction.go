package studio

import (
	"context"
	"errors"
	"sync"

	"github.com/color-studio/api/colors"
)

// ErrSuperseded is returned to an extraction that was replaced by a newer
// submission before it finished.
var ErrSuperseded = errors.New("extraction superseded by a newer image")

// Extraction runs palette extractions for one client with a
// last-submitted-wins policy: each Run cancels the one in flight, and only
// the newest submission gets a result.
type Extraction struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	extract func(context.Context, []byte) ([]colors.Swatch, error)
}

// NewExtraction returns a coordinator backed by colors.Extract.
func NewExtraction() *Extraction {
	return &Extraction{extract: colors.Extract}
}

// Run extracts swatches from pix. It returns ErrSuperseded if another Run
// started before this one finished.
func (e *Extraction) Run(ctx context.Context, pix []byte) ([]colors.Swatch, error) {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.seq++
	seq := e.seq
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	swatches, err := e.extract(ctx, pix)

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		return nil, ErrSuperseded
	}
	e.cancel = nil
	if err != nil {
		return nil, err
	}
	return swatches, nil
}

// Extractions keeps one Extraction per client key, for callers that have no
// session. A key's coordinator only lives while one of its runs is in
// flight, so keys that stop submitting hold no memory.
type Extractions struct {
	mu      sync.Mutex
	m       map[string]*pooledExtraction
	extract func(context.Context, []byte) ([]colors.Swatch, error)
}

type pooledExtraction struct {
	*Extraction
	active int
}

func NewExtractions() *Extractions {
	return &Extractions{
		m:       make(map[string]*pooledExtraction),
		extract: colors.Extract,
	}
}

// Run extracts swatches from pix with key's coordinator. Runs under the same
// key supersede each other as in Extraction.Run.
func (p *Extractions) Run(ctx context.Context, key string, pix []byte) ([]colors.Swatch, error) {
	p.mu.Lock()
	e, ok := p.m[key]
	if !ok {
		e = &pooledExtraction{Extraction: &Extraction{extract: p.extract}}
		p.m[key] = e
	}
	e.active++
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		e.active--
		if e.active == 0 {
			delete(p.m, key)
		}
	}()

	return e.Run(ctx, pix)
}

// Len is the number of keys with an extraction in flight.
func (p *Extractions) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}
