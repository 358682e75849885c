package legacy

import (
	"context"
	"sync"
	"sync/atomic"
)

// BatchResult summarizes a batch run. Failed maps legacy id to the
// error that stopped that item; other items are unaffected.
type BatchResult struct {
	Imported int
	Failed   map[string]error
}

// ImportAll imports every listed item with a fixed pool of workers.
// One item failing never aborts the batch; its error is recorded and
// the workers move on. Context cancellation stops the pool between
// items.
func (imp *Importer) ImportAll(ctx context.Context, workers int) (*BatchResult, error) {
	ids, err := imp.source.ItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	result := &BatchResult{Failed: make(map[string]error)}
	var (
		mu   sync.Mutex
		next int64 = -1
		wg   sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := atomic.AddInt64(&next, 1)
				if int(i) >= len(ids) {
					return
				}
				if ctx.Err() != nil {
					return
				}
				id := ids[i]
				_, err := imp.ImportItem(ctx, id)

				mu.Lock()
				if err != nil {
					result.Failed[id] = err
				} else {
					result.Imported++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
