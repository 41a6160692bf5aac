package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

func TestNewGrid(t *testing.T) {
	s := models.DefaultViewSettings() // 250x150, spacing 10

	g := newGrid(s, 100)
	assert.Equal(t, 31, g.cardCols)
	assert.Equal(t, 9, g.cardRows)
	assert.Equal(t, 1, g.gapCols)
	assert.Equal(t, 3, g.columns)

	g = newGrid(s, 10)
	assert.Equal(t, 1, g.columns, "at least one column")

	s.CardWidth, s.CardHeight = 50, 20
	g = newGrid(s, 80)
	assert.Equal(t, minCardCols, g.cardCols)
	assert.Equal(t, minCardRows, g.cardRows)
}

func TestGridMove(t *testing.T) {
	g := grid{columns: 3}
	// 0 1 2
	// 3 4
	tests := []struct {
		name           string
		cursor, dx, dy int
		want           int
	}{
		{"right", 0, 1, 0, 1},
		{"right wraps to next row", 2, 1, 0, 3},
		{"left at start", 0, -1, 0, 0},
		{"right at end", 4, 1, 0, 4},
		{"down", 1, 0, 1, 4},
		{"down onto short row", 2, 0, 1, 4},
		{"down on last row", 3, 0, 1, 3},
		{"up", 4, 0, -1, 1},
		{"up on first row", 1, 0, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.move(tt.cursor, 5, tt.dx, tt.dy))
		})
	}
	assert.Equal(t, 0, g.move(0, 0, 1, 0))
}

func TestGridScroll(t *testing.T) {
	g := grid{columns: 2, cardRows: 5}
	assert.Equal(t, 3, g.rows(5))
	assert.Equal(t, 2, g.visibleRows(12))
	assert.Equal(t, 1, g.visibleRows(2))

	assert.Equal(t, 0, g.scrollFor(1, 0, 2))
	assert.Equal(t, 1, g.scrollFor(4, 0, 2))
	assert.Equal(t, 0, g.scrollFor(0, 1, 2))
}
