package engine

import "strings"

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// CountSymbol counts the cells drawn with symbol s
func CountSymbol(grid [][]Symbol, s Symbol) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell == s {
				count++
			}
		}
	}
	return count
}

// Render draws the grid one line per row
func Render(g *Grid) []string {
	lines := make([]string, 0, g.Rows())
	for _, row := range g.Snapshot() {
		var b strings.Builder
		for _, s := range row {
			b.WriteRune(s.Glyph())
		}
		lines = append(lines, b.String())
	}
	return lines
}

// RenderSolution draws the grid with the solution path marked. The player
// and the exit keep their own glyphs. The grid itself is not modified.
func RenderSolution(g *Grid, sol Solution) []string {
	onPath := make(map[Position]bool, len(sol.Path))
	for _, p := range sol.Path {
		onPath[p] = true
	}

	lines := make([]string, 0, g.Rows())
	for r, row := range g.Snapshot() {
		var b strings.Builder
		for c, s := range row {
			if s == Open && onPath[Position{Row: r, Col: c}] {
				s = PathMarker
			}
			b.WriteRune(s.Glyph())
		}
		lines = append(lines, b.String())
	}
	return lines
}

// LocalView returns the 3x3 glyphs around p, '#' outside the grid
func LocalView(g *Grid, p Position) []string {
	lines := make([]string, 0, 3)
	for dr := -1; dr <= 1; dr++ {
		var b strings.Builder
		for dc := -1; dc <= 1; dc++ {
			q := Position{Row: p.Row + dr, Col: p.Col + dc}
			if !g.InBounds(q) {
				b.WriteRune(Wall.Glyph())
				continue
			}
			b.WriteRune(g.SymbolAt(q).Glyph())
		}
		lines = append(lines, b.String())
	}
	return lines
}
