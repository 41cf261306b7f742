package graphics

import (
	"errors"
	"sync"

	love "github.com/mcanthony/love-nacl"
)

// ErrNoTextureUnits is returned when a sampler cannot be given a texture
// unit: every unit is referenced by some program and the asking program
// has no free slot of its own left.
var ErrNoTextureUnits = errors.New("graphics: no more texture units available for shader")

// TextureUnitPool reference-counts the hardware texture units shared by
// every shader program of a GL context. A unit's count is the number of
// programs currently holding a texture bound there, not the number of
// bind calls.
//
// Unit 0 is excluded from the pool. It stays free as scratch space for
// texture creation and other transient binds, so a pool of capacity n
// covers hardware units 1 through n. All unit numbers accepted and
// returned by pool methods are these 1-based hardware indices.
//
// Every Shader created from one Graphics shares that Graphics' pool.
// Hosts driving several Graphics values over a single GL context pass one
// pool to each via WithTextureUnitPool. The pool serializes itself
// internally; no external locking is needed.
type TextureUnitPool struct {
	mu     sync.Mutex
	counts []int
}

// NewTextureUnitPool returns an empty pool. Capacity comes later, from
// EnsureCapacity, once the hardware limit is known.
func NewTextureUnitPool() *TextureUnitPool {
	return &TextureUnitPool{}
}

// EnsureCapacity grows the pool to cover at least n usable units. New
// slots start with a zero count. The pool never shrinks: programs created
// against a larger limit keep their claims valid.
func (p *TextureUnitPool) EnsureCapacity(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.counts) {
		grown := make([]int, n)
		copy(grown, p.counts)
		p.counts = grown
	}
}

// Assign picks a unit for a sampler that has none yet. bound is the
// asking program's unit-to-texture table; assignments never exceed its
// length, so a program is confined to its own hardware range even when
// another program has grown the pool further.
//
// Units free across all programs are preferred, keeping programs on
// disjoint units while any are left. Once every unit in range is
// referenced somewhere, the first slot the asking program itself leaves
// empty is reused and shared. When neither exists the pool is exhausted
// and ErrNoTextureUnits is returned.
//
// Assign only picks; it does not count. The caller records the sampler's
// unit and calls Retain once a texture is actually bound.
func (p *TextureUnitPool) Assign(bound []uint32) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	limit := min(len(bound), len(p.counts))
	for i := 0; i < limit; i++ {
		if p.counts[i] == 0 {
			return i + 1, nil
		}
	}
	for i, tex := range bound {
		if tex == 0 {
			return i + 1, nil
		}
	}
	return 0, ErrNoTextureUnits
}

// Retain counts one more program holding a texture on unit.
func (p *TextureUnitPool) Retain(unit int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if unit >= 1 && unit <= len(p.counts) {
		p.counts[unit-1]++
	}
}

// Release undoes one Retain. Counts floor at zero, so releasing more than
// was retained cannot corrupt the pool.
func (p *TextureUnitPool) Release(unit int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if unit < 1 || unit > len(p.counts) {
		return
	}
	if p.counts[unit-1] == 0 {
		love.Logger().Warn("unbalanced texture unit release", "unit", unit)
		return
	}
	p.counts[unit-1]--
}

// Capacity reports how many usable units the pool covers.
func (p *TextureUnitPool) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.counts)
}

// UseCount reports how many programs hold a texture on unit. Units
// outside the pool report zero.
func (p *TextureUnitPool) UseCount(unit int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if unit < 1 || unit > len(p.counts) {
		return 0
	}
	return p.counts[unit-1]
}

// Counts returns a snapshot of all reference counts, index 0 holding
// unit 1.
func (p *TextureUnitPool) Counts() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := make([]int, len(p.counts))
	copy(snapshot, p.counts)
	return snapshot
}
