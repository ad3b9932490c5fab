// Package store holds the console's client-side state: one set of
// collections per browser session, each mutation applied atomically.
package store

import "sync"

// LoadToken identifies one in-flight load. Only the latest token issued by a
// collection may replace its contents.
type LoadToken uint64

// Snapshot is a consistent copy of a collection's state.
type Snapshot[T any] struct {
	Items    []T    `json:"items"`
	Selected *T     `json:"selected,omitempty"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
	Stale    bool   `json:"stale"`
}

// Collection is an ordered list with an optional selected item and
// independent loading/error flags. Items are indexed by keyOf for lookups.
type Collection[T any] struct {
	mu       sync.RWMutex
	items    []T
	index    map[string]int
	selected *T
	loading  bool
	err      string
	stale    bool
	loaded   bool
	fresh    bool
	latest   LoadToken
	pending  []pendingAdd[T]
	keyOf    func(T) string
}

// pendingAdd is an appended item a load issued before it may not contain.
type pendingAdd[T any] struct {
	key   string
	after LoadToken
	item  T
}

func NewCollection[T any](keyOf func(T) string) *Collection[T] {
	return &Collection[T]{
		items: []T{},
		index: map[string]int{},
		keyOf: keyOf,
	}
}

// Set replaces the whole collection.
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(items)
	c.pending = nil
	c.stale = false
	c.loaded = true
}

// Add appends one item; existing items are kept as they are. Loads already in
// flight keep the item when their result is applied.
func (c *Collection[T]) Add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	if c.keyOf == nil {
		return
	}
	key := c.keyOf(item)
	c.index[key] = len(c.items) - 1
	c.pending = append(c.pending, pendingAdd[T]{key: key, after: c.latest, item: item})
}

// BeginLoad issues a new token, superseding every earlier one.
func (c *Collection[T]) BeginLoad() LoadToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	return c.latest
}

// Apply replaces the collection with the result of the load identified by
// token. A response from a superseded load is dropped and false returned.
// Items appended after the load was issued are carried over when the
// response lacks them.
func (c *Collection[T]) Apply(token LoadToken, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.latest {
		return false
	}
	c.replace(items)
	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.after < token {
			continue
		}
		kept = append(kept, p)
		if _, ok := c.index[p.key]; !ok {
			c.items = append(c.items, p.item)
			c.index[p.key] = len(c.items) - 1
		}
	}
	c.pending = kept
	c.stale = false
	c.loaded = true
	return true
}

// IsLatest reports whether token is still the newest load.
func (c *Collection[T]) IsLatest(token LoadToken) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return token == c.latest
}

func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T{}, c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Lookup finds an item by key.
func (c *Collection[T]) Lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var zero T
	i, ok := c.index[key]
	if !ok {
		return zero, false
	}
	return c.items[i], true
}

// SetSelected stores a copy of item; nil clears the selection.
func (c *Collection[T]) SetSelected(item *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item == nil {
		c.selected = nil
		return
	}
	v := *item
	c.selected = &v
}

func (c *Collection[T]) Selected() *T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		return nil
	}
	v := *c.selected
	return &v
}

func (c *Collection[T]) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// SetError records msg without touching the items.
func (c *Collection[T]) SetError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = msg
}

func (c *Collection[T]) ClearError() {
	c.SetError("")
}

func (c *Collection[T]) ErrorMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// MarkStale flags the contents as out of date after a remote mutation.
func (c *Collection[T]) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
	c.fresh = false
}

func (c *Collection[T]) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// MarkFresh records that a mutation just brought the contents up to date,
// so the next list-view entry can skip its fetch. A collection that was
// never loaded is not marked.
func (c *Collection[T]) MarkFresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fresh = c.loaded
}

// ConsumeFresh reports whether the contents are up to date and clears the
// mark. Stale contents are never fresh.
func (c *Collection[T]) ConsumeFresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := c.fresh && !c.stale
	c.fresh = false
	return fresh
}

func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Snapshot[T]{
		Items:   append([]T{}, c.items...),
		Loading: c.loading,
		Error:   c.err,
		Stale:   c.stale,
	}
	if c.selected != nil {
		v := *c.selected
		s.Selected = &v
	}
	return s
}

// Reset empties the collection and clears every flag. Loads still in flight
// are superseded and their results discarded.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(nil)
	c.pending = nil
	c.selected = nil
	c.loading = false
	c.err = ""
	c.stale = false
	c.loaded = false
	c.fresh = false
	c.latest++
}

func (c *Collection[T]) replace(items []T) {
	c.items = append([]T{}, items...)
	c.index = make(map[string]int, len(c.items))
	if c.keyOf == nil {
		return
	}
	for i, item := range c.items {
		c.index[c.keyOf(item)] = i
	}
}
