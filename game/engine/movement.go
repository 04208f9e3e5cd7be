package engine

// CanMoveTo checks if a player may stand on p
func (g *Grid) CanMoveTo(p Position) bool {
	return g.InBounds(p) && g.IsPassable(p)
}

// ApplyMove moves player one cell in dir when the target is passable. Bumping
// into a wall or the grid edge is a no-op, not an error. Either way the
// resulting position is recorded in the player's history, so a blocked move
// counts as revisiting the current cell. The grid's player overlay follows
// the player.
func ApplyMove(grid *Grid, player *PlayerState, dir Direction) (MoveResult, error) {
	if _, _, ok := dir.Delta(); !ok {
		return MoveResult{}, &DirectionError{Input: string(dir)}
	}

	from := player.Position
	target := from.Step(dir)

	result := MoveResult{
		Direction: dir,
		From:      from,
		Target:    target,
		To:        from,
	}

	if grid.CanMoveTo(target) {
		player.Position = target
		result.To = target
		result.Moved = true
	}

	grid.SetSymbolAt(player.Position, Player)
	result.Revisit = player.Record(player.Position)

	return result, nil
}

// PossibleMoves returns the directions from p that lead onto a passable cell
func (g *Grid) PossibleMoves(p Position) []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if g.CanMoveTo(p.Step(dir)) {
			possible = append(possible, dir)
		}
	}
	return possible
}
