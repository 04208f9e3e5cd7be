package engine

// frame is one cell on the search stack
type frame struct {
	pos     Position
	prev    Position
	hasPrev bool
	next    int // index into Directions of the next direction to try
}

// Solve searches a path from start to the grid's exit using depth-first
// search with backtracking. Directions are tried in the fixed order up, down,
// left, right, skipping the one that leads straight back to the predecessor.
// A cell already on the current path is never entered again, so a maze whose
// only route crosses itself is reported unsolvable.
//
// All search state is local to the call. An unsolvable maze is a normal
// result with Solvable == false.
func Solve(grid *Grid, start Position) Solution {
	sol := Solution{
		Start: start,
		Path:  []Position{},
		Moves: []Direction{},
	}

	if !grid.CanMoveTo(start) {
		return sol
	}

	exit := grid.ExitPosition()
	onPath := map[Position]bool{start: true}
	stack := []frame{{pos: start}}
	path := []Position{start}
	moves := []Direction{}
	sol.Explored = 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.pos == exit {
			sol.Path = path
			sol.Moves = moves
			sol.Solvable = true
			return sol
		}

		advanced := false
		for top.next < len(Directions) {
			dir := Directions[top.next]
			top.next++

			candidate := top.pos.Step(dir)
			if top.hasPrev && candidate == top.prev {
				continue
			}
			if !grid.CanMoveTo(candidate) || onPath[candidate] {
				continue
			}

			move, _ := DirectionBetween(top.pos, candidate)
			stack = append(stack, frame{pos: candidate, prev: top.pos, hasPrev: true})
			path = append(path, candidate)
			moves = append(moves, move)
			onPath[candidate] = true
			sol.Explored++
			advanced = true
			break
		}

		if advanced {
			continue
		}

		// Dead end: backtrack
		delete(onPath, top.pos)
		stack = stack[:len(stack)-1]
		path = path[:len(path)-1]
		if len(moves) > 0 {
			moves = moves[:len(moves)-1]
		}
	}

	return sol
}

// Replay applies the solution's moves one by one, calling step after each.
// It stops early and returns the error if a move is rejected.
func (s Solution) Replay(grid *Grid, player *PlayerState, step func(i int, result MoveResult)) error {
	for i, dir := range s.Moves {
		result, err := ApplyMove(grid, player, dir)
		if err != nil {
			return err
		}
		if step != nil {
			step(i, result)
		}
	}
	return nil
}
