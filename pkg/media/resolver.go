package media

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Resolver caches id-to-URL resolution in front of a Store. Renderers
// and editor components share one Resolver per process; a resolution
// failure yields an absent URL, never an error that aborts a render.
type Resolver struct {
	store Store
	group singleflight.Group

	// single holds id -> url indefinitely once resolved; entries are
	// evicted on failure so a later retry can succeed.
	single *cache.Cache

	// batch holds normalizedKey(ids) -> map[id]url so repeated renders
	// of the same document reuse one batch call.
	batch *cache.Cache
}

const batchTTL = 5 * time.Minute

func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:  store,
		single: cache.New(cache.NoExpiration, 0),
		batch:  cache.New(batchTTL, 10*time.Minute),
	}
}

// ResolveOne resolves a single media id. Concurrent callers for the
// same id share one in-flight request.
func (r *Resolver) ResolveOne(ctx context.Context, mediaID string) (string, bool) {
	if mediaID == "" {
		return "", false
	}
	if hit, found := r.single.Get(mediaID); found {
		return hit.(string), true
	}

	url, err, _ := r.group.Do(mediaID, func() (interface{}, error) {
		u, err := r.store.ResolveURL(ctx, mediaID)
		if err != nil {
			r.single.Delete(mediaID)
			return "", err
		}
		r.single.Set(mediaID, u, cache.NoExpiration)
		return u, nil
	})
	if err != nil {
		return "", false
	}
	return url.(string), true
}

// ResolveMany resolves a set of ids in one batch call, deduplicated and
// cached by the normalized key of the set. Ids that fail to resolve are
// simply absent from the returned map.
func (r *Resolver) ResolveMany(ctx context.Context, mediaIDs []string) map[string]string {
	ids := normalizeIDs(mediaIDs)
	if len(ids) == 0 {
		return map[string]string{}
	}
	key := strings.Join(ids, ",")

	if hit, found := r.batch.Get(key); found {
		return copyURLMap(hit.(map[string]string))
	}

	result, err, _ := r.group.Do("batch:"+key, func() (interface{}, error) {
		urls, err := r.store.ResolveMany(ctx, ids)
		if err != nil {
			// Total failure: callers render fallbacks for every id.
			return map[string]string{}, nil
		}
		r.batch.Set(key, urls, cache.DefaultExpiration)
		// Warm the per-id cache so subsequent single lookups are free.
		for id, u := range urls {
			r.single.Set(id, u, cache.NoExpiration)
		}
		return urls, nil
	})
	if err != nil {
		return map[string]string{}
	}
	return copyURLMap(result.(map[string]string))
}

// Invalidate drops a cached id, e.g. after the media row was deleted.
func (r *Resolver) Invalidate(mediaID string) {
	r.single.Delete(mediaID)
	r.batch.Flush()
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	// Sorted so {a,b} and {b,a} share one cache entry.
	sort.Strings(out)
	return out
}

func copyURLMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
