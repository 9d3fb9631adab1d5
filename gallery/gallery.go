package gallery

import (
	"errors"
	"fmt"
)

var (
	ErrNoItems     = errors.New("gallery has no items")
	ErrUnknownItem = errors.New("unknown gallery item")
)

// Gallery is the ordered item list plus the lightbox selection. The zero
// value is an empty, closed gallery.
type Gallery struct {
	items   []Item
	index   int
	isOpen  bool
	onIndex []func(Item)
}

// New returns a closed gallery over items.
func New(items []Item) *Gallery {
	return &Gallery{items: items}
}

func (g *Gallery) Items() []Item { return g.items }
func (g *Gallery) Len() int      { return len(g.items) }
func (g *Gallery) IsOpen() bool  { return g.isOpen }
func (g *Gallery) Index() int    { return g.index }

// OnChange registers fn to run whenever the open item changes (open or
// navigate). The lightbox resets its zoom here.
func (g *Gallery) OnChange(fn func(Item)) {
	g.onIndex = append(g.onIndex, fn)
}

// Current returns the open item.
func (g *Gallery) Current() (Item, bool) {
	if !g.isOpen || g.index < 0 || g.index >= len(g.items) {
		return Item{}, false
	}
	return g.items[g.index], true
}

// Item returns the item at i.
func (g *Gallery) Item(i int) (Item, bool) {
	if i < 0 || i >= len(g.items) {
		return Item{}, false
	}
	return g.items[i], true
}

// IndexOf returns the position of the item with id, or -1.
func (g *Gallery) IndexOf(id string) int {
	for i, it := range g.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Open shows the item at index i in the lightbox.
func (g *Gallery) Open(i int) error {
	if len(g.items) == 0 {
		return ErrNoItems
	}
	if i < 0 || i >= len(g.items) {
		return fmt.Errorf("open index %d of %d: %w", i, len(g.items), ErrUnknownItem)
	}
	g.index = i
	g.isOpen = true
	g.notify()
	return nil
}

// OpenID shows the item with the given id.
func (g *Gallery) OpenID(id string) error {
	i := g.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("open %q: %w", id, ErrUnknownItem)
	}
	return g.Open(i)
}

// Close hides the lightbox; the index is kept.
func (g *Gallery) Close() {
	g.isOpen = false
}

// Next moves to the following item, wrapping to the first.
func (g *Gallery) Next() {
	g.navigate(1)
}

// Previous moves to the preceding item, wrapping to the last.
func (g *Gallery) Previous() {
	g.navigate(-1)
}

func (g *Gallery) navigate(delta int) {
	n := len(g.items)
	if n == 0 || !g.isOpen {
		return
	}
	g.index = ((g.index+delta)%n + n) % n
	g.notify()
}

// Replace swaps in a new item list, keeping the open item open when it is
// still present and closing the lightbox otherwise.
func (g *Gallery) Replace(items []Item) {
	var openID string
	if cur, ok := g.Current(); ok {
		openID = cur.ID
	}
	g.items = items
	if openID == "" {
		if g.index >= len(items) {
			g.index = 0
		}
		return
	}
	if i := g.IndexOf(openID); i >= 0 {
		g.index = i
		return
	}
	g.index = 0
	g.isOpen = false
}

func (g *Gallery) notify() {
	it := g.items[g.index]
	for _, fn := range g.onIndex {
		fn(it)
	}
}
