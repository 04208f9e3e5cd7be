package engine

import "fmt"

// Grid is the semantic maze. Each cell holds its base classification; the
// player is an overlay that never changes the classification underneath it.
type Grid struct {
	cells     [][]Symbol
	rows      int
	cols      int
	exit      Position
	player    Position
	hasPlayer bool
}

// FromRaw translates a validated raw grid into a Grid and the PlayerState
// standing on the start cell. The start cell is seeded into the player's
// visited history.
func FromRaw(raw RawGrid) (*Grid, *PlayerState, error) {
	rows, cols := raw.Rows(), raw.Cols()
	if rows == 0 || cols == 0 {
		return nil, nil, &ParseError{Kind: ErrMalformedFormat, Detail: "maze is empty"}
	}

	g := &Grid{
		cells: make([][]Symbol, rows),
		rows:  rows,
		cols:  cols,
	}

	var start Position
	starts, exits := 0, 0

	for r, row := range raw {
		if len(row) != cols {
			return nil, nil, &ParseError{
				Kind:   ErrSizeMismatch,
				Line:   r + 2,
				Detail: fmt.Sprintf("row %d has %d characters, expected %d", r+1, len(row), cols),
			}
		}

		g.cells[r] = make([]Symbol, cols)
		for c, ch := range row {
			pos := Position{Row: r, Col: c}
			switch ch {
			case RawWall:
				g.cells[r][c] = Wall
			case RawStart:
				g.cells[r][c] = Open
				start = pos
				starts++
			case RawExit:
				g.cells[r][c] = Exit
				g.exit = pos
				exits++
			case RawOpen, RawReserved:
				g.cells[r][c] = Open
			default:
				return nil, nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnexpectedSymbol, ch, r, c)
			}
		}
	}

	if starts != 1 || exits != 1 {
		return nil, nil, fmt.Errorf("%w: found %d start and %d exit markers", ErrMarkerCount, starts, exits)
	}

	g.player = start
	g.hasPlayer = true

	player := NewPlayerState(start)
	player.Visited = append(player.Visited, start)

	return g, player, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether p lies inside the grid
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// IsPassable reports whether p is anything but a wall. Callers must check
// InBounds first.
func (g *Grid) IsPassable(p Position) bool {
	return g.cells[p.Row][p.Col] != Wall
}

// ExitPosition returns the recorded exit cell
func (g *Grid) ExitPosition() Position {
	return g.exit
}

// PlayerPosition returns the overlay position, if a player is on the grid
func (g *Grid) PlayerPosition() (Position, bool) {
	return g.player, g.hasPlayer
}

// SymbolAt returns what is drawn at p, including the player overlay
func (g *Grid) SymbolAt(p Position) Symbol {
	if g.hasPlayer && p == g.player {
		return Player
	}
	return g.cells[p.Row][p.Col]
}

// BaseSymbolAt returns the classification at p ignoring the player overlay
func (g *Grid) BaseSymbolAt(p Position) Symbol {
	return g.cells[p.Row][p.Col]
}

// SetSymbolAt writes s at p. Writing Player moves the overlay and leaves the
// classification of both cells untouched. Writing Exit relocates the exit.
// The exit cell keeps its classification against any other write.
func (g *Grid) SetSymbolAt(p Position, s Symbol) {
	switch {
	case s == Player:
		g.player = p
		g.hasPlayer = true
	case s == Exit:
		g.cells[g.exit.Row][g.exit.Col] = Open
		g.cells[p.Row][p.Col] = Exit
		g.exit = p
	case p == g.exit:
		return
	default:
		g.cells[p.Row][p.Col] = s
	}
}

// Snapshot returns a copy of the drawn grid, overlay included
func (g *Grid) Snapshot() [][]Symbol {
	out := make([][]Symbol, g.rows)
	for r := range g.cells {
		out[r] = make([]Symbol, g.cols)
		copy(out[r], g.cells[r])
	}
	if g.hasPlayer {
		out[g.player.Row][g.player.Col] = Player
	}
	return out
}

// OpenCells counts the passable cells
func (g *Grid) OpenCells() int {
	count := 0
	for _, row := range g.cells {
		for _, s := range row {
			if s != Wall {
				count++
			}
		}
	}
	return count
}

// MarkPath paints path markers on the open cells of path. Walls and the exit
// are left alone.
func (g *Grid) MarkPath(path []Position) {
	for _, p := range path {
		if g.InBounds(p) && g.cells[p.Row][p.Col] == Open {
			g.cells[p.Row][p.Col] = PathMarker
		}
	}
}

// ClearPath turns every path marker back into an open cell
func (g *Grid) ClearPath() {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] == PathMarker {
				g.cells[r][c] = Open
			}
		}
	}
}
