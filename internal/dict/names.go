package dict

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// ErrNamesUnavailable is returned by name searches when no names dictionary
// is configured.
var ErrNamesUnavailable = errors.New("names dictionary not available")

// NameLoader loads the names dictionary on first use.
type NameLoader func(ctx context.Context) (Source, error)

// namesGate loads the names dictionary at most once at a time. A failed
// load is not remembered; the next search retries. Cancelling one caller
// does not fail the others waiting on the same load.
type namesGate struct {
	load  NameLoader
	src   atomic.Pointer[Source]
	group singleflight.Group
}

func (g *namesGate) get(ctx context.Context) (*Source, error) {
	if s := g.src.Load(); s != nil {
		return s, nil
	}
	if g.load == nil {
		return nil, ErrNamesUnavailable
	}

	// The shared load ignores cancellation; each caller stops waiting on its
	// own context.
	loadCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan("names", func() (any, error) {
		if s := g.src.Load(); s != nil {
			return s, nil
		}
		src, err := g.load(loadCtx)
		if err != nil {
			return nil, err
		}
		g.src.Store(&src)
		return &src, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, fmt.Errorf("loading names dictionary: %w", r.Err)
		}
		return r.Val.(*Source), nil
	}
}

// LoadNames loads the names dictionary if it is not loaded yet.
func (d *Dictionary) LoadNames(ctx context.Context) error {
	_, err := d.names.get(ctx)
	return err
}

// NamesLoaded reports whether the names dictionary is in memory.
func (d *Dictionary) NamesLoaded() bool {
	return d.names.src.Load() != nil
}
