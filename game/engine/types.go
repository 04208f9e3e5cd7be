package engine

import (
	"strconv"
	"strings"
)

// Symbol is the gameplay classification of a grid cell
type Symbol string

const (
	Wall       Symbol = "wall"
	Open       Symbol = "open"
	Player     Symbol = "player"
	Exit       Symbol = "exit"
	PathMarker Symbol = "path"
)

// Limits
const (
	MaxBulkMoves        = 200
	WebSocketBufferSize = 256
)

// Raw maze characters accepted by the parser
const (
	RawWall     = '#'
	RawOpen     = ' '
	RawStart    = 'S'
	RawExit     = 'E'
	RawReserved = '.'
)

// Glyph returns the character used by the text renderer
func (s Symbol) Glyph() rune {
	switch s {
	case Wall:
		return '#'
	case Player:
		return '@'
	case Exit:
		return 'E'
	case PathMarker:
		return '*'
	default:
		return ' '
	}
}

// Position is a 0-indexed (row, col) grid coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighbouring position one cell away in direction d.
// Unknown directions return p unchanged.
func (p Position) Step(d Direction) Position {
	dr, dc, _ := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Direction is one of the four cardinal moves
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists the moves in the fixed order the solver explores them.
var Directions = []Direction{Up, Down, Left, Right}

// Delta returns the row/col offset for d and whether d is a known direction
func (d Direction) Delta() (int, int, bool) {
	switch d {
	case Up:
		return -1, 0, true
	case Down:
		return 1, 0, true
	case Left:
		return 0, -1, true
	case Right:
		return 0, 1, true
	}
	return 0, 0, false
}

// Opposite returns the direction that undoes d
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// ParseDirection accepts direction words and the console keys w/a/s/d
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w", "north":
		return Up, nil
	case "down", "s", "south":
		return Down, nil
	case "left", "a", "west":
		return Left, nil
	case "right", "d", "east":
		return Right, nil
	}
	return "", &DirectionError{Input: s}
}

// DirectionBetween derives the move taken between two adjacent cells from the
// row/col delta. A zero delta yields ok == false.
func DirectionBetween(from, to Position) (Direction, bool) {
	switch {
	case to.Row < from.Row:
		return Up, true
	case to.Row > from.Row:
		return Down, true
	case to.Col < from.Col:
		return Left, true
	case to.Col > from.Col:
		return Right, true
	}
	return "", false
}

// RawGrid is the rectangular character grid accepted by the parser
type RawGrid [][]rune

// Rows returns the number of rows
func (r RawGrid) Rows() int {
	return len(r)
}

// Cols returns the number of columns
func (r RawGrid) Cols() int {
	if len(r) == 0 {
		return 0
	}
	return len(r[0])
}

// String serialises the grid back to the maze file format
func (r RawGrid) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Rows()))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Cols()))
	b.WriteByte('\n')
	for _, row := range r {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// MoveResult describes the outcome of a single directional move
type MoveResult struct {
	Direction Direction `json:"direction"`
	From      Position  `json:"from"`
	Target    Position  `json:"target"`
	To        Position  `json:"to"`
	Moved     bool      `json:"moved"`
	Revisit   bool      `json:"revisit"`
}

// Solution is the outcome of a path search. Path runs from the start cell to
// the exit inclusive and Moves holds one direction per step between them.
type Solution struct {
	Start    Position    `json:"start"`
	Path     []Position  `json:"path"`
	Moves    []Direction `json:"moves"`
	Solvable bool        `json:"solvable"`
	Explored int         `json:"explored"`
}

// GameState is a serialisable snapshot of a running maze game
type GameState struct {
	MazeName  string     `json:"maze_name"`
	Grid      [][]Symbol `json:"grid"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	PlayerPos Position   `json:"player_pos"`
	Exit      Position   `json:"exit"`
	Visited   []Position `json:"visited"`
	Revisited []Position `json:"revisited"`
	Message   string     `json:"message"`
	Completed bool       `json:"completed"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. MoveHistory is
	// cumulative across resets.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper views
	Lines         []string    `json:"lines,omitempty"`
	LocalView3x3  []string    `json:"local_view_3x3,omitempty"`
	PossibleMoves []Direction `json:"possible_moves,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action       Direction `json:"action"`
	FromPosition Position  `json:"from_position"`
	ToPosition   Position  `json:"to_position"`
	Timestamp    int64     `json:"timestamp"`
	Success      bool      `json:"success"`
	Revisit      bool      `json:"revisit"`
	MoveNumber   int       `json:"move_number"`
}
