// Package pipecache provides the content-addressed cache for
// intermediate pixel-pipeline buffers, together with the stack hashing
// that keys it.
//
// The cache holds a small fixed number of lines (typically around 5).
// Each line owns one float32 buffer plus the two-level hash of the
// pipeline state that produced it: a basic hash over the module stack
// and parameters, and a full hash that additionally covers the
// viewport. Lookups scan the lines linearly; at this size a scan beats
// any map.
//
// Buffers are never freed by invalidation or flushing, only by Close.
// Re-render is the hot path and allocation churn per interactive
// parameter tweak would cost far more than keeping a handful of large
// buffers resident.
//
// Thread safety: none. The pipeline coordinator serializes all calls;
// buffer contents returned by Get may be read concurrently by render
// workers once the line is populated (a handoff, not shared mutation).
package pipecache

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/rawpipe"
	"github.com/gogpu/rawpipe/internal/pixbuf"
)

// Common errors for cache construction.
var (
	// ErrInvalidEntries is returned when the requested line count is
	// not positive.
	ErrInvalidEntries = errors.New("pipecache: invalid entry count")
)

// Weight levels for cache lines. Higher weights survive eviction
// longer; WeightImportant pins a line outright.
const (
	// WeightJustUsed is the baseline weight a freshly populated line
	// starts at.
	WeightJustUsed int32 = 1

	// WeightBackground marks a line unlikely to be revisited (preview
	// and speculative computations); it is the first eviction choice.
	WeightBackground int32 = 0

	// WeightImportant pins a line. Pinned lines are only evicted when
	// every line is pinned.
	WeightImportant int32 = math.MaxInt32
)

// Datatype identifies the sample representation of a cached buffer.
type Datatype uint8

const (
	// DatatypeFloat32 is the pipeline's native working format.
	DatatypeFloat32 Datatype = iota

	// DatatypeUint16 is used for raw sensor data carried through the
	// early pipeline stages.
	DatatypeUint16
)

// Format describes a cached buffer's pixel layout.
type Format struct {
	// Channels is the interleaved channel count (1 or 4).
	Channels int

	// Datatype is the sample representation.
	Datatype Datatype

	// Filters is the sensor mosaic pattern, 0 for demosaiced data.
	Filters uint32
}

// line is one cache slot: a buffer plus the hashes and usage weight
// that govern its reuse and eviction.
type line struct {
	buf    *pixbuf.Buf
	basic  uint64
	full   uint64
	format Format
	weight int32
	seq    uint64 // last-bump sequence, breaks eviction ties
	valid  bool
}

// Cache is the fixed-capacity pixel-pipeline cache.
type Cache struct {
	lines   []line
	maxSize int // sizing hint: largest single buffer, in float32 samples

	seq       uint64
	queries   uint64
	misses    uint64
	evictions uint64
}

// Stats reports cache counters for diagnostics.
type Stats struct {
	Lines     int
	MaxSize   int
	Queries   uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// New creates a cache with the given number of lines. maxSize bounds
// the largest single buffer the cache is expected to hold, in float32
// samples; it is a sizing hint, not a hard per-line cap.
func New(entries, maxSize int) (*Cache, error) {
	if entries < 1 {
		return nil, ErrInvalidEntries
	}
	c := &Cache{
		lines:   make([]line, entries),
		maxSize: maxSize,
	}
	for i := range c.lines {
		c.lines[i].buf = pixbuf.New()
	}
	return c, nil
}

// Get looks up the buffer for the given hash pair. On a hit it bumps
// the line's recency and returns (data, true); the buffer holds the
// previously computed contents. On a miss it selects an eviction
// victim, sizes its buffer for size samples and the given format, and
// returns (data, false); the caller must fill the buffer in.
//
// A hit whose stored buffer does not match size or format is resized
// transparently and reported as a miss, since the contents must be
// rewritten.
func (c *Cache) Get(basic, full uint64, size int, f Format) ([]float32, bool) {
	return c.get(basic, full, size, f, WeightJustUsed, false)
}

// GetImportant is Get with the line pinned immediately, so a buffer
// that is known to be revisited soon (the displayed viewport) cannot
// be evicted right after being populated.
func (c *Cache) GetImportant(basic, full uint64, size int, f Format) ([]float32, bool) {
	return c.get(basic, full, size, f, WeightImportant, true)
}

// GetWeighted is Get with the line's weight forced to the given level
// immediately, on hit and miss alike. Use WeightBackground for
// speculative or preview computations that should be evicted first.
func (c *Cache) GetWeighted(basic, full uint64, size int, f Format, weight int32) ([]float32, bool) {
	return c.get(basic, full, size, f, weight, true)
}

func (c *Cache) get(basic, full uint64, size int, f Format, weight int32, force bool) ([]float32, bool) {
	c.queries++
	if c.maxSize > 0 && size > c.maxSize {
		rawpipe.Logger().Warn("pipecache: buffer exceeds cache sizing hint",
			"size", size, "max", c.maxSize)
	}

	for i := range c.lines {
		l := &c.lines[i]
		if !l.valid || l.full != full {
			continue
		}
		c.seq++
		l.seq = c.seq
		if l.buf.Size() != size || l.format != f {
			// Stored buffer does not match the request: keep the line
			// but its contents must be recomputed.
			c.misses++
			if err := l.buf.EnsureCapacity(size); err != nil {
				l.valid = false
				return nil, false
			}
			l.basic = basic
			l.format = f
			l.weight = weight
			return l.buf.Data(), false
		}
		if force {
			l.weight = weight
		} else if l.weight < WeightImportant-1 {
			l.weight++
		}
		return l.buf.Data(), true
	}

	// Miss: choose a victim and hand its buffer to the caller.
	c.misses++
	v := c.victim()
	if v.valid {
		c.evictions++
	}
	if err := v.buf.EnsureCapacity(size); err != nil {
		v.valid = false
		return nil, false
	}
	c.seq++
	v.basic = basic
	v.full = full
	v.format = f
	v.weight = weight
	v.seq = c.seq
	v.valid = true
	return v.buf.Data(), false
}

// victim selects the line to evict. Invalidated lines are free slots
// and go first, in index order. Otherwise: the lowest weight among
// non-pinned lines, ties broken by the oldest bump sequence. Pinned
// lines are only considered when every line is pinned.
func (c *Cache) victim() *line {
	for i := range c.lines {
		if !c.lines[i].valid {
			return &c.lines[i]
		}
	}
	var best *line
	for i := range c.lines {
		l := &c.lines[i]
		if l.weight == WeightImportant {
			continue
		}
		if best == nil || l.weight < best.weight ||
			(l.weight == best.weight && l.seq < best.seq) {
			best = l
		}
	}
	if best != nil {
		return best
	}
	// All lines pinned: fall back to the oldest.
	best = &c.lines[0]
	for i := 1; i < len(c.lines); i++ {
		if c.lines[i].seq < best.seq {
			best = &c.lines[i]
		}
	}
	return best
}

// Available reports whether a Get for the given full hash would hit,
// without promoting the line or evicting anything. Speculative checks
// must not distort the eviction order.
func (c *Cache) Available(full uint64) bool {
	for i := range c.lines {
		if c.lines[i].valid && c.lines[i].full == full {
			return true
		}
	}
	return false
}

// Flush invalidates every line without freeing buffers. The buffers
// stay warm for reuse but no future hash can match them.
func (c *Cache) Flush() {
	for i := range c.lines {
		c.lines[i].valid = false
	}
}

// FlushAllBut invalidates every line whose basic hash differs from the
// given one. Used when a downstream parameter change invalidates
// everything except lines belonging to unaffected upstream stages.
func (c *Cache) FlushAllBut(basic uint64) {
	for i := range c.lines {
		if c.lines[i].basic != basic {
			c.lines[i].valid = false
		}
	}
}

// Reweight pins the line owning the given buffer. Called after a hit
// that the caller knows will be reused again soon.
func (c *Cache) Reweight(data []float32) {
	for i := range c.lines {
		l := &c.lines[i]
		if l.buf.Owns(data) {
			c.seq++
			l.weight = WeightImportant
			l.seq = c.seq
			return
		}
	}
}

// Invalidate clears the hash of the line owning the given buffer so it
// no longer matches any query. The memory is kept as an immediate
// reuse candidate.
func (c *Cache) Invalidate(data []float32) {
	for i := range c.lines {
		if c.lines[i].buf.Owns(data) {
			c.lines[i].valid = false
			return
		}
	}
}

// Close releases all line buffers. The cache must not be used after
// Close.
func (c *Cache) Close() {
	for i := range c.lines {
		c.lines[i].buf.Release()
		c.lines[i].valid = false
	}
	c.lines = nil
}

// Stats returns the cache counters.
func (c *Cache) Stats() Stats {
	s := Stats{
		Lines:     len(c.lines),
		MaxSize:   c.maxSize,
		Queries:   c.queries,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if c.queries > 0 {
		s.HitRate = float64(c.queries-c.misses) / float64(c.queries)
	}
	return s
}

// DumpLines returns a human-readable snapshot of all line states.
// Diagnostic output only, not a stable interface.
func (c *Cache) DumpLines() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pipecache: %d lines, %d queries, %d misses, %d evictions\n",
		len(c.lines), c.queries, c.misses, c.evictions)
	for i := range c.lines {
		l := &c.lines[i]
		fmt.Fprintf(&b, "  line %d: valid=%v basic=%016x full=%016x weight=%d seq=%d size=%d\n",
			i, l.valid, l.basic, l.full, l.weight, l.seq, l.buf.Size())
	}
	return b.String()
}
