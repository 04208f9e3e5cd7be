package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mazegame/game/engine"
	"github.com/wricardo/mazegame/logger"
)

// gameServiceImpl implements the GameService interface. Every engine
// mutation happens under mu, so each session has a single writer.
type gameServiceImpl struct {
	sessions SessionManager
	mazes    MazeManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, mazes MazeManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		mazes:    mazes,
	}
}

// CreateSession creates a new game session on the named maze, or on the
// default maze when the name is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, mazeName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw engine.RawGrid
	var err error
	if mazeName != "" {
		mazeName = strings.TrimSuffix(mazeName, ".txt")
		raw, err = s.mazes.LoadMaze(mazeName)
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				return nil, s.mazeNotFound(mazeName, err)
			}
			return nil, fmt.Errorf("failed to load maze %s: %w", mazeName, err)
		}
	} else {
		mazeName, raw = s.mazes.GetDefault()
	}

	session, err := s.sessions.Create("", mazeName, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"session": session.ID,
		"maze":    mazeName,
	}).Info("Session created")

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}

	logger.Log.WithField("session", sessionID).Info("Session deleted")
	return nil
}

// Move executes a single move for a session. A wall bump is a successful
// call with Success == false.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, newEvent("reset", "Game reset to initial state", sess.Engine.GetPlayerPosition()))
	}

	move, err := sess.Engine.Move(dir)
	if err != nil {
		return nil, err
	}
	state := enrich(sess.Engine)

	result := &MoveResult{
		Success:   move.Moved,
		Revisit:   move.Revisit,
		GameState: state,
		Message:   state.Message,
		Events:    append(events, moveEvents(move, state.Completed)...),
	}

	if move.Moved {
		result.Step = &StepInfo{
			Idx:       1,
			Dir:       dir,
			From:      move.From,
			To:        move.To,
			Success:   true,
			Revisit:   move.Revisit,
			Completed: state.Completed,
		}
	} else {
		result.AttemptedTo = attempted(sess.Engine.Grid(), move.Target)
	}

	logger.Log.WithFields(logrus.Fields{
		"session": sessionID,
		"dir":     dir,
		"from":    move.From,
		"to":      move.To,
		"moved":   move.Moved,
	}).Debug("Move")

	return result, nil
}

// BulkMove executes multiple moves in sequence. It stops at the first
// blocked move or when the exit is reached.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	dirs := make([]engine.Direction, 0, len(moves))
	for i, m := range moves {
		dir, err := engine.ParseDirection(m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		dirs = append(dirs, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(dirs),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, newEvent("reset", "Game reset to initial state", sess.Engine.GetPlayerPosition()))
	}
	result.StartPos = sess.Engine.GetPlayerPosition()

	// Limit moves to prevent abuse
	if len(dirs) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		dirs = dirs[:engine.MaxBulkMoves]
	}

	for i, dir := range dirs {
		if sess.Engine.IsCompleted() {
			result.StoppedReason = "maze already solved"
			result.StopReasonCode = "completed"
			result.StoppedOnMove = i + 1
			break
		}

		move, err := sess.Engine.Move(dir)
		if err != nil {
			return nil, err
		}
		completed := sess.Engine.IsCompleted()
		result.Events = append(result.Events, moveEvents(move, completed)...)

		if !move.Moved {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, dir)
			result.StoppedOnMove = i + 1
			result.AttemptedTo = attempted(sess.Engine.Grid(), move.Target)
			if result.AttemptedTo.Boundary {
				result.StopReasonCode = "blocked_boundary"
			} else {
				result.StopReasonCode = "blocked_wall"
			}
			break
		}

		result.MovesExecuted++
		result.Steps = append(result.Steps, StepInfo{
			Idx:       i + 1,
			Dir:       dir,
			From:      move.From,
			To:        move.To,
			Success:   true,
			Revisit:   move.Revisit,
			Completed: completed,
		})
	}

	state := enrich(sess.Engine)
	result.GameState = state
	result.EndPos = state.PlayerPos
	result.Completed = state.Completed
	result.Message = state.Message
	result.PossibleMoves = state.PossibleMoves
	result.LocalView3x3 = state.LocalView3x3
	if result.Completed && result.StopReasonCode == "" {
		result.StopReasonCode = "completed"
	}

	logger.Log.WithFields(logrus.Fields{
		"session":  sessionID,
		"executed": result.MovesExecuted,
		"request":  result.RequestedMoves,
		"stop":     result.StopReasonCode,
		"end":      result.EndPos,
	}).Debug("Bulk move")

	return result, nil
}

// Reset puts the player back on the start cell of a freshly loaded maze
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	return enrich(sess.Engine), nil
}

// ReplayReset clears the traversal history without moving the player
func (s *gameServiceImpl) ReplayReset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.ResetHistory()
	return enrich(sess.Engine), nil
}

// Solve searches a path from the player's current position, paints it on the
// grid and, with opts.Apply, walks it step by step
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	solution := eng.Solve()
	lines := engine.RenderSolution(eng.Grid(), solution)
	eng.ShowSolution(solution)

	result := &SolveResult{
		Solution: solution,
		Lines:    lines,
	}

	logger.Log.WithFields(logrus.Fields{
		"session":  sessionID,
		"solvable": solution.Solvable,
		"moves":    len(solution.Moves),
		"explored": solution.Explored,
	}).Info("Solve")

	if solution.Solvable && opts.Apply {
		total := len(solution.Moves)
		for i, dir := range solution.Moves {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("solve interrupted after %d of %d moves: %w", i, total, err)
			}

			move, err := eng.Move(dir)
			if err != nil {
				return nil, err
			}
			if opts.OnStep != nil {
				opts.OnStep(SolveStep{
					Index:     i,
					Total:     total,
					Move:      move,
					GameState: enrich(eng),
				})
			}
		}
		result.Applied = true
	}

	state := enrich(eng)
	result.GameState = state
	result.Message = state.Message
	return result, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return enrich(sess.Engine), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return paginate(sess.Engine.GetMoveHistory(), opts), nil
}

// DescribeCell reports what is at pos in a session's maze
func (s *gameServiceImpl) DescribeCell(ctx context.Context, sessionID string, pos engine.Position) (*CellInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	grid := sess.Engine.Grid()
	info := &CellInfo{Position: pos}
	if !grid.InBounds(pos) {
		return info, nil
	}

	info.InBounds = true
	info.Symbol = grid.BaseSymbolAt(pos)
	info.Passable = grid.IsPassable(pos)
	info.IsExit = pos == grid.ExitPosition()
	info.IsPlayer = pos == sess.Engine.GetPlayerPosition()
	info.Visited = sess.Engine.Player().HasVisited(pos)
	for _, p := range sess.Engine.GetRevisited() {
		if p == pos {
			info.Revisits++
		}
	}
	return info, nil
}

// ListMazes returns the available mazes
func (s *gameServiceImpl) ListMazes(ctx context.Context) ([]*MazeInfo, error) {
	return s.mazes.ListMazes()
}

// LoadMaze returns a maze file with its summary and rendering
func (s *gameServiceImpl) LoadMaze(ctx context.Context, mazeName string) (*MazeDetail, error) {
	mazeName = strings.TrimSuffix(mazeName, ".txt")
	raw, err := s.mazes.LoadMaze(mazeName)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			return nil, s.mazeNotFound(mazeName, err)
		}
		return nil, err
	}

	return describeDetail(mazeName, raw), nil
}

// SaveMaze validates and stores a maze file
func (s *gameServiceImpl) SaveMaze(ctx context.Context, mazeName, content string) (*MazeInfo, error) {
	raw, err := s.mazes.SaveMaze(mazeName, content)
	if err != nil {
		return nil, err
	}
	return DescribeMaze(strings.TrimSuffix(mazeName, ".txt"), raw), nil
}

// getSession marks a session accessed and returns a copy that already
// carries the new access time
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return sess, nil
}

// mazeNotFound lists the available maze IDs in the error
func (s *gameServiceImpl) mazeNotFound(name string, err error) error {
	available, listErr := s.mazes.ListMazes()
	if listErr == nil && len(available) > 0 {
		ids := make([]string, 0, len(available))
		for _, m := range available {
			ids = append(ids, m.MazeID)
		}
		return fmt.Errorf("maze '%s' not found, available mazes: %v: %w", name, ids, err)
	}
	return fmt.Errorf("maze '%s' not found, use /api/mazes to list available mazes: %w", name, err)
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		MazeName:       sess.MazeName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      enrich(sess.Engine),
	}
}

// enrich adds the decision aids agents use to the engine's state
func enrich(eng *engine.GameEngine) *engine.GameState {
	state := eng.GetState()
	state.LocalView3x3 = engine.LocalView(eng.Grid(), state.PlayerPos)
	state.PossibleMoves = eng.GetPossibleMoves()
	return state
}

func newEvent(kind, message string, pos engine.Position) GameEvent {
	return GameEvent{
		Type:      kind,
		Message:   message,
		Timestamp: time.Now(),
		Position:  pos,
	}
}

// moveEvents generates events from a move
func moveEvents(move engine.MoveResult, completed bool) []GameEvent {
	if !move.Moved {
		return []GameEvent{newEvent("blocked",
			fmt.Sprintf("Blocked moving %s at (%d,%d)", move.Direction, move.Target.Row, move.Target.Col), move.From)}
	}

	events := []GameEvent{newEvent("move",
		fmt.Sprintf("Moved %s to (%d,%d)", move.Direction, move.To.Row, move.To.Col), move.To)}

	if move.Revisit {
		events = append(events, newEvent("revisit",
			fmt.Sprintf("Back on (%d,%d)", move.To.Row, move.To.Col), move.To))
	}
	if completed {
		events = append(events, newEvent("completed", "Exit reached", move.To))
	}
	return events
}

// attempted describes a cell a move could not enter
func attempted(grid *engine.Grid, target engine.Position) *AttemptInfo {
	info := &AttemptInfo{Row: target.Row, Col: target.Col}
	if !grid.InBounds(target) {
		info.Symbol = "boundary"
		info.Boundary = true
		return info
	}
	info.Symbol = string(grid.BaseSymbolAt(target))
	info.Passable = grid.IsPassable(target)
	return info
}

// paginate slices history by page, newest first unless opts.Order is "asc"
func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	// Pages past the end are empty and never compute an offset
	start := total
	if opts.Page-1 < totalPages {
		start = (opts.Page - 1) * opts.Limit
	}
	end := min(start+opts.Limit, total)

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
