package service

import (
	"time"

	"github.com/wricardo/mazegame/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	MazeName       string            `json:"maze_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool              `json:"success"`
	Revisit     bool              `json:"revisit"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // blocked_wall|blocked_boundary|completed
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPos engine.Position `json:"start_pos"`
	EndPos   engine.Position `json:"end_pos"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	Completed     bool               `json:"completed"`
	Message       string             `json:"message,omitempty"`
	PossibleMoves []engine.Direction `json:"possible_moves,omitempty"`
	LocalView3x3  []string           `json:"local_view_3x3,omitempty"`
}

// StepInfo is a compact record for one executed move
type StepInfo struct {
	Idx       int              `json:"idx"`
	Dir       engine.Direction `json:"dir"`
	From      engine.Position  `json:"from"`
	To        engine.Position  `json:"to"`
	Success   bool             `json:"success"`
	Revisit   bool             `json:"revisit,omitempty"`
	Completed bool             `json:"completed,omitempty"`
}

// AttemptInfo details a target cell the player could not enter
type AttemptInfo struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Symbol   string `json:"symbol"`
	Boundary bool   `json:"boundary"`
	Passable bool   `json:"passable"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "blocked", "revisit", "completed", "reset", "replay"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// SolveOptions controls a solve request. With Apply set the solution is
// walked through the move engine and OnStep, when non-nil, sees every step.
type SolveOptions struct {
	Apply  bool
	OnStep func(step SolveStep)
}

// SolveStep is one move of an applied solution
type SolveStep struct {
	Index     int               `json:"index"`
	Total     int               `json:"total"`
	Move      engine.MoveResult `json:"move"`
	GameState *engine.GameState `json:"game_state"`
}

// SolveResult is the outcome of a solve request
type SolveResult struct {
	Solution  engine.Solution   `json:"solution"`
	Applied   bool              `json:"applied"`
	Lines     []string          `json:"lines"`
	Message   string            `json:"message"`
	GameState *engine.GameState `json:"game_state"`
}

// CellInfo describes a single grid cell for agents
type CellInfo struct {
	Position engine.Position `json:"position"`
	InBounds bool            `json:"in_bounds"`
	Symbol   engine.Symbol   `json:"symbol,omitempty"`
	Passable bool            `json:"passable"`
	Visited  bool            `json:"visited"`
	Revisits int             `json:"revisits"`
	IsExit   bool            `json:"is_exit"`
	IsPlayer bool            `json:"is_player"`
}

// MazeInfo provides information about a maze file
type MazeInfo struct {
	Filename       string `json:"filename"`
	MazeID         string `json:"maze_id"` // The identifier to use for session creation
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	OpenCells      int    `json:"open_cells"`
	Solvable       bool   `json:"solvable"`
	SolutionLength int    `json:"solution_length"`
}

// MazeDetail is a maze file with its rendering
type MazeDetail struct {
	MazeInfo
	Content string   `json:"content"`
	Lines   []string `json:"lines"`
}
