package autocomplete

// RowLayout reports the vertical extent of result row i inside the list container.
type RowLayout interface {
	RowSpan(i int) (top, height int)
}

// FixedRows is a layout where every row has the same height.
type FixedRows int

func (h FixedRows) RowSpan(i int) (int, int) {
	return i * int(h), int(h)
}

// Viewport is the scroll state of the result list. Top and Left are scroll offsets,
// Height is the visible height of the container.
type Viewport struct {
	Top    int
	Left   int
	Height int
	Rows   RowLayout
}

// Reveal scrolls vertically just enough for row i to be fully visible.
// A row taller than the container is aligned to its top. Left is never touched.
func (v *Viewport) Reveal(i int) {
	if v.Rows == nil || v.Height <= 0 || i < 0 {
		return
	}
	top, height := v.Rows.RowSpan(i)
	switch {
	case top < v.Top || height > v.Height:
		v.Top = top
	case top+height > v.Top+v.Height:
		v.Top = top + height - v.Height
	}
	if v.Top < 0 {
		v.Top = 0
	}
}
