package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var seen []Progress
	ctx, tracker := WithNewTracker(context.Background(), "run-1", "order", func(p Progress) {
		seen = append(seen, p)
	})
	UpdateCtx(ctx, Delta{Visited: 2, Emitted: 1})
	UpdateCtx(ctx, Delta{Absorbed: 1, CutOff: 1})
	UpdateCtx(ctx, Delta{Fired: 1})

	snapshot, ok := GetSnapshot(ctx)
	assert.True(t, ok)
	assert.Equal(t, 2, snapshot.Visited)
	assert.Equal(t, 1, snapshot.Emitted)
	assert.Equal(t, 1, snapshot.Absorbed)
	assert.Equal(t, 1, snapshot.Fired)
	assert.Equal(t, 1, snapshot.CutOff)
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Len(t, seen, 3)
	assert.Equal(t, 2, seen[0].Visited)
	assert.Same(t, tracker, mustTracker(t, ctx))
}

func TestProgress_Concurrent(t *testing.T) {
	ctx, tracker := WithNewTracker(context.Background(), "run", "p", nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UpdateCtx(ctx, Delta{Visited: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, tracker.Snapshot().Visited)
}

func TestProgress_NoTracker(t *testing.T) {
	UpdateCtx(context.Background(), Delta{Visited: 1})
	_, ok := GetSnapshot(context.Background())
	assert.False(t, ok)
	var nilTracker *Progress
	nilTracker.Update(Delta{Visited: 1})
	assert.Equal(t, Progress{}, nilTracker.Snapshot())
}

func mustTracker(t *testing.T, ctx context.Context) *Progress {
	tracker, ok := FromContext(ctx)
	assert.True(t, ok)
	return tracker
}
