// Package engine provides the core maze logic for the Maze Runner game.
//
// The engine package implements:
//   - Parsing and validating the textual maze format
//   - The semantic maze grid with a movable player overlay
//   - Player position and traversal history bookkeeping
//   - Directional movement with wall collision
//   - Depth-first backtracking path search
//   - A plain text renderer for consoles and agents
//
// Core Types:
//
// RawGrid is the validated character grid produced by Parse. FromRaw turns it
// into a Grid (walls, open cells, the exit and the player overlay) and the
// PlayerState positioned on the start cell. ApplyMove moves a player on a grid
// and Solve searches a path from any cell to the exit. GameEngine bundles all
// of these behind the Engine interface used by the service layer.
//
// Usage:
//
//	raw, err := engine.LoadFile("mazes/maze001.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine("maze001", raw)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the player
//	result, _ := gameEngine.Move(engine.Right)
//	state := gameEngine.GetState()
//
//	// Ask for a solution from the current position
//	solution := gameEngine.Solve()
//
// Maze Format:
//
// The first line holds two odd, positive integers "rows cols". It is followed
// by exactly rows lines of exactly cols characters drawn from '#' (wall),
// ' ' (open), 'S' (start), 'E' (exit) and '.' (open). Parse reports the first
// problem found as a *ParseError whose kind is one of ErrNotFound,
// ErrMalformedFormat, ErrSizeMismatch or ErrInvalidCharacter.
package engine
