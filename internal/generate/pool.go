package generate

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vampirenirmal/narrative/internal/beat"
)

// DraftConcurrent drafts outlines with up to workers generation calls in
// flight. Results land at their outline's position, so beat indexes stay
// strictly increasing regardless of completion order. The core pipeline
// uses the sequential DraftBeats path; this one serves bulk pre-drafting
// where per-beat ordering of side effects does not matter.
func (d *Drafter) DraftConcurrent(ctx context.Context, outlines []SceneOutline, startIndex, workers int) ([]*beat.StoryBeat, error) {
	if len(outlines) == 0 {
		return nil, nil
	}
	if workers <= 1 {
		return d.DraftBeats(ctx, outlines, startIndex)
	}

	slog.Debug("Starting concurrent drafting",
		"outlines", len(outlines),
		"workers", workers)

	beats := make([]*beat.StoryBeat, len(outlines))

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	for i, outline := range outlines {
		i, outline := i, outline
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return ctx.Err()
			}

			b, err := d.DraftBeat(ctx, outline, startIndex+i)
			if err != nil {
				return fmt.Errorf("outline %d: %w", i, err)
			}
			beats[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return beats, nil
}
