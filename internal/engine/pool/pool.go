// Package pool provides a generation-checked arena. Objects are addressed by
// Handle values instead of pointers so a freed slot can be reused without old
// handles silently resolving to the new occupant.
package pool

// Handle addresses a slot in a Pool[T]. The zero Handle never resolves.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// IsNone reports whether the handle is the zero handle.
func (h Handle[T]) IsNone() bool {
	return h.generation == 0
}

// Index returns the slot index. Only meaningful for live handles.
func (h Handle[T]) Index() uint32 {
	return h.index
}

// Generation returns the slot generation the handle was issued for.
func (h Handle[T]) Generation() uint32 {
	return h.generation
}

type record[T any] struct {
	generation uint32 // 0 while the slot is vacant
	value      T
}

// Pool stores values of T in reusable slots.
// It is not safe for concurrent mutation.
type Pool[T any] struct {
	records []record[T]
	free    []uint32
	// last generation issued per slot, kept while the slot is vacant
	issued []uint32
	alive  int
}

// New creates an empty pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Spawn stores value and returns its handle.
func (p *Pool[T]) Spawn(value T) Handle[T] {
	p.alive++

	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		gen := p.issued[idx] + 1
		if gen == 0 {
			gen = 1
		}
		p.issued[idx] = gen
		p.records[idx] = record[T]{generation: gen, value: value}
		return Handle[T]{index: idx, generation: gen}
	}

	idx := uint32(len(p.records))
	p.records = append(p.records, record[T]{generation: 1, value: value})
	p.issued = append(p.issued, 1)
	return Handle[T]{index: idx, generation: 1}
}

// Borrow returns a pointer to the value behind h. The pointer stays valid
// until the next Spawn (which may grow the backing slice) or Free of h.
func (p *Pool[T]) Borrow(h Handle[T]) (*T, bool) {
	if !p.Alive(h) {
		return nil, false
	}
	return &p.records[h.index].value, true
}

// Alive reports whether h still addresses a live value.
func (p *Pool[T]) Alive(h Handle[T]) bool {
	if h.IsNone() || int(h.index) >= len(p.records) {
		return false
	}
	return p.records[h.index].generation == h.generation
}

// Free releases the slot behind h. Returns false for stale or zero handles.
func (p *Pool[T]) Free(h Handle[T]) (T, bool) {
	var zero T
	if !p.Alive(h) {
		return zero, false
	}
	rec := &p.records[h.index]
	value := rec.value
	rec.generation = 0
	rec.value = zero
	p.free = append(p.free, h.index)
	p.alive--
	return value, true
}

// Len returns the number of live values.
func (p *Pool[T]) Len() int {
	return p.alive
}

// Each calls fn for every live value in slot order.
func (p *Pool[T]) Each(fn func(Handle[T], *T)) {
	for i := range p.records {
		rec := &p.records[i]
		if rec.generation == 0 {
			continue
		}
		fn(Handle[T]{index: uint32(i), generation: rec.generation}, &rec.value)
	}
}

// Clear frees every slot. Outstanding handles become stale.
func (p *Pool[T]) Clear() {
	var zero T
	p.free = p.free[:0]
	for i := range p.records {
		if p.records[i].generation != 0 {
			p.records[i] = record[T]{value: zero}
		}
		p.free = append(p.free, uint32(i))
	}
	p.alive = 0
}
