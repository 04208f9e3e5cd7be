package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mazegame/logger"
)

// Engine provides the main interface for maze game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	ResetHistory() *GameState
	IsCompleted() bool
	GetPlayerPosition() Position
	ExitPosition() Position

	// Movement operations
	Move(direction Direction) (MoveResult, error)
	CanMove(direction Direction) bool
	GetPossibleMoves() []Direction

	// Solving
	Solve() Solution
	ShowSolution(solution Solution)

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
	GetVisited() []Position
	GetRevisited() []Position

	// Rendering
	Render() []string
}

// GameEngine implements the Engine interface over one maze
type GameEngine struct {
	name   string
	raw    RawGrid
	grid   *Grid
	player *PlayerState

	message           string
	moveHistory       []MoveHistoryEntry
	totalMoves        int
	currentMoves      []MoveHistoryEntry
	currentMovesCount int
}

// NewEngine creates a game engine for a parsed maze
func NewEngine(name string, raw RawGrid) (*GameEngine, error) {
	grid, player, err := FromRaw(raw)
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		name:         name,
		raw:          raw,
		grid:         grid,
		player:       player,
		message:      welcomeMessage(name),
		moveHistory:  []MoveHistoryEntry{},
		currentMoves: []MoveHistoryEntry{},
	}, nil
}

// Name returns the maze name the engine was created with
func (e *GameEngine) Name() string {
	return e.name
}

// Raw returns the raw maze the engine was built from
func (e *GameEngine) Raw() RawGrid {
	return e.raw
}

// Grid returns the live grid
func (e *GameEngine) Grid() *Grid {
	return e.grid
}

// Player returns the live player state
func (e *GameEngine) Player() *PlayerState {
	return e.player
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	player := e.player.Clone()

	return &GameState{
		MazeName:          e.name,
		Grid:              e.grid.Snapshot(),
		Rows:              e.grid.Rows(),
		Cols:              e.grid.Cols(),
		PlayerPos:         player.Position,
		Exit:              e.grid.ExitPosition(),
		Visited:           player.Visited,
		Revisited:         player.Revisited,
		Message:           e.message,
		Completed:         e.IsCompleted(),
		MoveHistory:       append([]MoveHistoryEntry(nil), e.moveHistory...),
		TotalMoves:        e.totalMoves,
		CurrentMoves:      append([]MoveHistoryEntry(nil), e.currentMoves...),
		CurrentMovesCount: e.currentMovesCount,
		Lines:             Render(e.grid),
	}
}

// Reset rebuilds the maze from its source and puts the player back on the
// start cell. Cumulative history survives; the current segment is cleared.
func (e *GameEngine) Reset() *GameState {
	// e.raw passed FromRaw in NewEngine, so a failure here means it was
	// corrupted; keep playing on the current grid
	grid, player, err := FromRaw(e.raw)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"maze":  e.name,
			"error": err,
		}).Error("Failed to rebuild maze on reset")
	} else {
		e.grid = grid
		e.player = player
	}
	e.player.ResetHistory()

	e.currentMoves = []MoveHistoryEntry{}
	e.currentMovesCount = 0
	e.message = welcomeMessage(e.name)

	return e.GetState()
}

// ResetHistory clears the traversal history for a replay without moving the
// player or reloading the maze
func (e *GameEngine) ResetHistory() *GameState {
	e.player.ResetHistory()
	e.currentMoves = []MoveHistoryEntry{}
	e.currentMovesCount = 0
	e.message = "Traversal history cleared"
	return e.GetState()
}

// IsCompleted reports whether the player stands on the exit
func (e *GameEngine) IsCompleted() bool {
	return e.player.Position == e.grid.ExitPosition()
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.player.Position
}

// ExitPosition returns the exit cell
func (e *GameEngine) ExitPosition() Position {
	return e.grid.ExitPosition()
}

// Move attempts to move the player in the specified direction
func (e *GameEngine) Move(direction Direction) (MoveResult, error) {
	result, err := ApplyMove(e.grid, e.player, direction)
	if err != nil {
		e.message = err.Error()
		return result, err
	}

	switch {
	case !result.Moved:
		e.message = fmt.Sprintf("Can't move %s: wall at (%d,%d)", direction, result.Target.Row, result.Target.Col)
	case e.IsCompleted():
		e.message = "You have solved the maze!"
	default:
		e.message = fmt.Sprintf("Moved %s to (%d,%d)", direction, result.To.Row, result.To.Col)
	}

	e.addMoveToHistory(result)
	return result, nil
}

// CanMove checks if the player can move in the specified direction
func (e *GameEngine) CanMove(direction Direction) bool {
	if _, _, ok := direction.Delta(); !ok {
		return false
	}
	return e.grid.CanMoveTo(e.player.Position.Step(direction))
}

// GetPossibleMoves returns all valid directions the player can move
func (e *GameEngine) GetPossibleMoves() []Direction {
	return e.grid.PossibleMoves(e.player.Position)
}

// BulkMove executes moves in sequence and reports for each whether the player
// actually moved. It stops at the first invalid direction.
func (e *GameEngine) BulkMove(moves []Direction) ([]bool, error) {
	results := make([]bool, 0, len(moves))
	for _, direction := range moves {
		result, err := e.Move(direction)
		if err != nil {
			return results, err
		}
		results = append(results, result.Moved)
	}
	return results, nil
}

// Solve searches a path from the player's current position to the exit
func (e *GameEngine) Solve() Solution {
	return Solve(e.grid, e.player.Position)
}

// ShowSolution paints the solution's path markers onto the grid
func (e *GameEngine) ShowSolution(solution Solution) {
	e.grid.ClearPath()
	if solution.Solvable {
		e.grid.MarkPath(solution.Path)
		e.message = fmt.Sprintf("Solution found: %d moves", len(solution.Moves))
	} else {
		e.message = "There is no solution"
	}
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.moveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.moveHistory) == 0 {
		return nil
	}
	return &e.moveHistory[len(e.moveHistory)-1]
}

// GetVisited returns the cells stepped on once, in order
func (e *GameEngine) GetVisited() []Position {
	return e.player.Visited
}

// GetRevisited returns the cells stepped on again, in order of the repeat
func (e *GameEngine) GetRevisited() []Position {
	return e.player.Revisited
}

// Render draws the current grid
func (e *GameEngine) Render() []string {
	return Render(e.grid)
}

// addMoveToHistory appends to both the cumulative and the current segment
func (e *GameEngine) addMoveToHistory(result MoveResult) {
	entry := MoveHistoryEntry{
		Action:       result.Direction,
		FromPosition: result.From,
		ToPosition:   result.To,
		Timestamp:    time.Now().Unix(),
		Success:      result.Moved,
		Revisit:      result.Revisit,
		MoveNumber:   e.totalMoves + 1,
	}
	e.moveHistory = append(e.moveHistory, entry)
	e.totalMoves++

	e.currentMoves = append(e.currentMoves, entry)
	e.currentMovesCount++
}

func welcomeMessage(name string) string {
	if name == "" {
		return "Welcome! Find your way from S to the exit."
	}
	return fmt.Sprintf("Welcome to %s! Find your way from S to the exit.", name)
}
