package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportReveal(t *testing.T) {
	testCases := []struct {
		viewport    Viewport
		row         int
		expectedTop int
		description string
	}{
		{Viewport{Top: 0, Height: 30, Rows: FixedRows(10)}, 1, 0, "already visible"},
		{Viewport{Top: 0, Height: 30, Rows: FixedRows(10)}, 5, 30, "below scrolls down"},
		{Viewport{Top: 40, Height: 30, Rows: FixedRows(10)}, 2, 20, "above scrolls up"},
		{Viewport{Top: 0, Height: 25, Rows: FixedRows(10)}, 2, 5, "partially visible"},
		{Viewport{Top: 0, Height: 5, Rows: FixedRows(10)}, 3, 30, "row taller than container"},
		{Viewport{Top: 15, Height: 30}, 4, 15, "no layout"},
		{Viewport{Top: 15, Height: 30, Rows: FixedRows(10)}, -1, 15, "no highlight"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			v := tc.viewport
			v.Left = 3
			v.Reveal(tc.row)
			assert.Equal(t, tc.expectedTop, v.Top)
			assert.Equal(t, 3, v.Left)
		})
	}
}
