package service

import (
	"context"
	"time"

	"github.com/wricardo/mazegame/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, mazeName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	ReplayReset(ctx context.Context, sessionID string) (*engine.GameState, error)
	Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	DescribeCell(ctx context.Context, sessionID string, pos engine.Position) (*CellInfo, error)

	// Maze library
	ListMazes(ctx context.Context) ([]*MazeInfo, error)
	LoadMaze(ctx context.Context, mazeName string) (*MazeDetail, error)
	SaveMaze(ctx context.Context, mazeName, content string) (*MazeInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, mazeName string, raw engine.RawGrid) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// MazeManager handles maze file loading
type MazeManager interface {
	LoadMaze(name string) (engine.RawGrid, error)
	ListMazes() ([]*MazeInfo, error)
	GetDefault() (string, engine.RawGrid)
	SaveMaze(name, content string) (engine.RawGrid, error)
}

// Session represents an active game session
type Session struct {
	ID             string
	MazeName       string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
