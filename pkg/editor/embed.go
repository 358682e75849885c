package editor

import (
	"time"
)

// Rect is an on-screen rectangle in container-relative pixels.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Player is one live embedded video player, keyed by the document node
// it belongs to. The document itself only renders a placeholder block
// (preserving flow and scroll height); the player lives in an overlay
// layer positioned over the placeholder's rectangle.
type Player struct {
	NodeKey  string
	VideoID  string
	lastUsed time.Time
}

// PlayerPool bounds the number of live players while scrolling through
// a document with many embeds. Eviction is strict LRU: the least
// recently acquired player is torn down first. The pool is owned by
// one renderer instance, not shared global state.
type PlayerPool struct {
	cap     int
	players map[string]*Player
	order   []string // least recently used first
}

const DefaultPlayerCap = 4

func NewPlayerPool(capacity int) *PlayerPool {
	if capacity <= 0 {
		capacity = DefaultPlayerCap
	}
	return &PlayerPool{
		cap:     capacity,
		players: make(map[string]*Player),
	}
}

// Acquire returns the player for a node key, creating it if needed, and
// marks it most recently used. The second result is the evicted player,
// if acquiring pushed the pool over capacity; the caller tears it down.
func (p *PlayerPool) Acquire(nodeKey, videoID string, now time.Time) (*Player, *Player) {
	if pl, ok := p.players[nodeKey]; ok {
		pl.lastUsed = now
		p.touch(nodeKey)
		return pl, nil
	}

	pl := &Player{NodeKey: nodeKey, VideoID: videoID, lastUsed: now}
	p.players[nodeKey] = pl
	p.order = append(p.order, nodeKey)

	var evicted *Player
	if len(p.players) > p.cap {
		oldest := p.order[0]
		p.order = p.order[1:]
		evicted = p.players[oldest]
		delete(p.players, oldest)
	}
	return pl, evicted
}

// Release drops a player, e.g. when its node was removed.
func (p *PlayerPool) Release(nodeKey string) {
	if _, ok := p.players[nodeKey]; !ok {
		return
	}
	delete(p.players, nodeKey)
	p.remove(nodeKey)
}

// Len reports the number of live players.
func (p *PlayerPool) Len() int { return len(p.players) }

func (p *PlayerPool) touch(nodeKey string) {
	p.remove(nodeKey)
	p.order = append(p.order, nodeKey)
}

func (p *PlayerPool) remove(nodeKey string) {
	for i, k := range p.order {
		if k == nodeKey {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

// Overlay positions pooled players over their placeholder rectangles.
// Geometry is recomputed on content update, container scroll and window
// resize; recomputation requests arriving faster than the frame budget
// are skipped, not queued, to avoid layout thrash.
type Overlay struct {
	pool        *PlayerPool
	frameBudget time.Duration
	lastLayout  time.Time

	container    Rect
	scrollTop    float64
	placeholders map[string]Rect
	positions    map[string]Rect
}

const defaultFrameBudget = 16 * time.Millisecond

func NewOverlay(pool *PlayerPool) *Overlay {
	return &Overlay{
		pool:         pool,
		frameBudget:  defaultFrameBudget,
		placeholders: make(map[string]Rect),
		positions:    make(map[string]Rect),
	}
}

// SetContainer records the scroll container's viewport rectangle.
func (o *Overlay) SetContainer(r Rect) { o.container = r }

// SetScrollTop records the container's current scroll offset.
func (o *Overlay) SetScrollTop(top float64) { o.scrollTop = top }

// SetPlaceholder records where a node's placeholder block sits in
// document coordinates.
func (o *Overlay) SetPlaceholder(nodeKey string, r Rect) {
	o.placeholders[nodeKey] = r
}

// RemovePlaceholder forgets a node and releases its player.
func (o *Overlay) RemovePlaceholder(nodeKey string) {
	delete(o.placeholders, nodeKey)
	delete(o.positions, nodeKey)
	o.pool.Release(nodeKey)
}

// Layout recomputes player positions for every known placeholder.
// Returns false when the call landed inside the frame budget of the
// previous layout and was skipped.
func (o *Overlay) Layout(now time.Time) bool {
	if !o.lastLayout.IsZero() && now.Sub(o.lastLayout) < o.frameBudget {
		return false
	}
	o.lastLayout = now

	for key, ph := range o.placeholders {
		o.positions[key] = Rect{
			Top:    ph.Top - o.scrollTop,
			Left:   ph.Left - o.container.Left,
			Width:  ph.Width,
			Height: ph.Height,
		}
	}
	return true
}

// Position returns the last computed overlay rectangle for a node.
func (o *Overlay) Position(nodeKey string) (Rect, bool) {
	r, ok := o.positions[nodeKey]
	return r, ok
}
