// Package mask owns the binary coverage bitmap painted over a rectified
// wall image and the editing session that mutates it.
package mask

// Covered is the pixel value for covered mask cells; uncovered cells are 0.
const Covered = 255

// Mask is a single-channel coverage bitmap the size of the rectified
// image, stored as a flat buffer indexed by y*Width+x. The covered-pixel
// count is maintained incrementally so coverage queries are O(1).
type Mask struct {
	Width  int
	Height int

	pix     []uint8
	covered int
}

// New creates an empty (all-uncovered) mask.
func New(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		pix:    make([]uint8, width*height),
	}
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{
		Width:   m.Width,
		Height:  m.Height,
		pix:     make([]uint8, len(m.pix)),
		covered: m.covered,
	}
	copy(c.pix, m.pix)
	return c
}

// InBounds reports whether (x, y) lies inside the bitmap.
func (m *Mask) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At reports whether the pixel is covered. Out-of-bounds reads are false.
func (m *Mask) At(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.pix[y*m.Width+x] != 0
}

// Set marks or clears one pixel. Out-of-bounds writes are silently
// clipped.
func (m *Mask) Set(x, y int, covered bool) {
	if !m.InBounds(x, y) {
		return
	}
	i := y*m.Width + x
	if covered {
		if m.pix[i] == 0 {
			m.pix[i] = Covered
			m.covered++
		}
	} else {
		if m.pix[i] != 0 {
			m.pix[i] = 0
			m.covered--
		}
	}
}

// Reset clears every pixel.
func (m *Mask) Reset() {
	for i := range m.pix {
		m.pix[i] = 0
	}
	m.covered = 0
}

// CoveredCount returns the number of covered pixels.
func (m *Mask) CoveredCount() int {
	return m.covered
}

// CoveragePercent returns 100 * covered / total, in [0, 100].
func (m *Mask) CoveragePercent() float64 {
	total := m.Width * m.Height
	if total == 0 {
		return 0
	}
	return 100 * float64(m.covered) / float64(total)
}

// Pix exposes the raw buffer for rendering and serialization. Callers must
// not write through it; mutations go through Set so the covered count
// stays true.
func (m *Mask) Pix() []uint8 {
	return m.pix
}

// Bytes returns a copy of the raw buffer, for session persistence.
func (m *Mask) Bytes() []byte {
	out := make([]byte, len(m.pix))
	copy(out, m.pix)
	return out
}

// SetBytes replaces the bitmap content from a serialized buffer of the
// same dimensions and recounts coverage.
func (m *Mask) SetBytes(data []byte) bool {
	if len(data) != len(m.pix) {
		return false
	}
	m.covered = 0
	for i, v := range data {
		if v != 0 {
			m.pix[i] = Covered
			m.covered++
		} else {
			m.pix[i] = 0
		}
	}
	return true
}

// Equal reports pixel-for-pixel equality.
func (m *Mask) Equal(other *Mask) bool {
	if other == nil || m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i := range m.pix {
		if (m.pix[i] != 0) != (other.pix[i] != 0) {
			return false
		}
	}
	return true
}
