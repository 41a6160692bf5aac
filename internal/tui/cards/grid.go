package cards

import "github.com/mattsolo1/grove-cards/pkg/models"

// Card sizes are configured in pixels; a terminal cell is taken to be
// pixelsPerCol wide and pixelsPerRow tall.
const (
	pixelsPerCol = 8
	pixelsPerRow = 16

	minCardCols = 12
	minCardRows = 4
)

// grid is the terminal layout derived from the card settings.
type grid struct {
	cardCols int
	cardRows int
	gapCols  int
	gapRows  int
	columns  int
}

func newGrid(settings models.ViewSettings, width int) grid {
	g := grid{
		cardCols: max(settings.CardWidth/pixelsPerCol, minCardCols),
		cardRows: max(settings.CardHeight/pixelsPerRow, minCardRows),
		gapCols:  max(settings.CardSpacing/pixelsPerCol, 1),
		gapRows:  settings.CardSpacing / pixelsPerRow,
	}
	g.columns = max((width+g.gapCols)/(g.cardCols+g.gapCols), 1)
	return g
}

// rowOf returns the grid row holding card i.
func (g grid) rowOf(i int) int {
	return i / g.columns
}

// rows returns the number of grid rows needed for n cards.
func (g grid) rows(n int) int {
	return (n + g.columns - 1) / g.columns
}

// visibleRows returns how many card rows fit in height terminal lines.
func (g grid) visibleRows(height int) int {
	return max((height+g.gapRows)/(g.cardRows+g.gapRows), 1)
}

// move returns the cursor after a step of dx columns and dy rows, clamped
// to the n cards laid out on the grid.
func (g grid) move(cursor, n, dx, dy int) int {
	if n == 0 {
		return 0
	}
	next := cursor
	switch {
	case dx != 0:
		next = cursor + dx
	case dy != 0:
		next = cursor + dy*g.columns
		if next >= n && g.rowOf(n-1) > g.rowOf(cursor) {
			// Moving down onto a short last row lands on its last card.
			next = n - 1
		}
	}
	if next < 0 || next >= n {
		return cursor
	}
	return next
}

// scrollFor returns the first visible row keeping cursor on screen.
func (g grid) scrollFor(cursor, scroll, visible int) int {
	row := g.rowOf(cursor)
	if row < scroll {
		return row
	}
	if row >= scroll+visible {
		return row - visible + 1
	}
	return scroll
}
