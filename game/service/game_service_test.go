package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mazegame/game/engine"
	"github.com/wricardo/mazegame/game/service"
)

var errNotFound = errors.New("session not found")

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id, mazeName string, raw engine.RawGrid) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(mazeName, raw)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		MazeName:       mazeName,
		Engine:         eng,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errNotFound
}

// MockMazeManager implements service.MazeManager for testing
type MockMazeManager struct {
	mazes map[string]engine.RawGrid
}

const loopMaze = `7 7
#######
#S    #
# ### #
#     #
# ### #
#    E#
#######
`

const walledMaze = `5 5
#####
#S  #
#####
#  E#
#####
`

func NewMockMazeManager(t *testing.T) *MockMazeManager {
	m := &MockMazeManager{mazes: map[string]engine.RawGrid{}}
	for name, text := range map[string]string{"loop": loopMaze, "walled": walledMaze} {
		raw, err := engine.ParseString(text)
		require.NoError(t, err)
		m.mazes[name] = raw
	}
	return m
}

func (m *MockMazeManager) LoadMaze(name string) (engine.RawGrid, error) {
	raw, ok := m.mazes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", engine.ErrNotFound, name)
	}
	return raw, nil
}

func (m *MockMazeManager) ListMazes() ([]*service.MazeInfo, error) {
	var infos []*service.MazeInfo
	for _, name := range []string{"loop", "walled"} {
		infos = append(infos, service.DescribeMaze(name, m.mazes[name]))
	}
	return infos, nil
}

func (m *MockMazeManager) GetDefault() (string, engine.RawGrid) {
	return "loop", m.mazes["loop"]
}

func (m *MockMazeManager) SaveMaze(name, content string) (engine.RawGrid, error) {
	raw, err := engine.ParseString(content)
	if err != nil {
		return nil, err
	}
	m.mazes[name] = raw
	return raw, nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockMazeManager(t)), sessions
}

func createSession(t *testing.T, svc service.GameService, maze string) string {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), maze)
	require.NoError(t, err)
	return info.ID
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("named maze", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "walled")
		require.NoError(t, err)
		assert.Equal(t, "walled", info.MazeName)
		assert.Equal(t, engine.Position{Row: 1, Col: 1}, info.GameState.PlayerPos)
		assert.Len(t, info.GameState.LocalView3x3, 3)
	})

	t.Run("txt suffix is ignored", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "loop.txt")
		require.NoError(t, err)
		assert.Equal(t, "loop", info.MazeName)
	})

	t.Run("default maze", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "loop", info.MazeName)
	})

	t.Run("unknown maze lists alternatives", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrNotFound)
		assert.Contains(t, err.Error(), "loop")
	})
}

func TestGetAndListSessions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc, "loop")

	info, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)

	_, err = svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, errNotFound)

	createSession(t, svc, "walled")
	all, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteSession(ctx, id))
	assert.ErrorIs(t, svc.DeleteSession(ctx, id), errNotFound)
}

func TestMove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc, "loop")

	t.Run("open cell", func(t *testing.T) {
		result, err := svc.Move(ctx, id, "down", false)
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.Step)
		assert.Equal(t, engine.Position{Row: 2, Col: 1}, result.Step.To)
		assert.Nil(t, result.AttemptedTo)
	})

	t.Run("wall bump", func(t *testing.T) {
		result, err := svc.Move(ctx, id, "a", false)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.True(t, result.Revisit)
		require.NotNil(t, result.AttemptedTo)
		assert.Equal(t, "wall", result.AttemptedTo.Symbol)
		assert.False(t, result.AttemptedTo.Passable)
		assert.Equal(t, "blocked", result.Events[0].Type)
	})

	t.Run("invalid direction", func(t *testing.T) {
		_, err := svc.Move(ctx, id, "sideways", false)
		assert.ErrorIs(t, err, engine.ErrInvalidDirection)
	})

	t.Run("reset first", func(t *testing.T) {
		result, err := svc.Move(ctx, id, "right", true)
		require.NoError(t, err)
		assert.Equal(t, "reset", result.Events[0].Type)
		assert.Equal(t, engine.Position{Row: 1, Col: 2}, result.GameState.PlayerPos)
		assert.Equal(t, 1, result.GameState.CurrentMovesCount)
		assert.Equal(t, 3, result.GameState.TotalMoves)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Move(ctx, "missing", "up", false)
		assert.ErrorIs(t, err, errNotFound)
	})
}

func TestBulkMove(t *testing.T) {
	ctx := context.Background()

	t.Run("reaches the exit", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		result, err := svc.BulkMove(ctx, id, []string{"down", "down", "down", "down", "right", "right", "right", "right"}, false)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.Completed)
		assert.Equal(t, 8, result.MovesExecuted)
		assert.Equal(t, "completed", result.StopReasonCode)
		assert.Equal(t, engine.Position{Row: 5, Col: 5}, result.EndPos)
		assert.True(t, result.Steps[7].Completed)
	})

	t.Run("stops on a wall", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		result, err := svc.BulkMove(ctx, id, []string{"right", "down", "right"}, false)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.MovesExecuted)
		assert.Equal(t, 2, result.StoppedOnMove)
		assert.Equal(t, "blocked_wall", result.StopReasonCode)
		assert.Equal(t, engine.Position{Row: 1, Col: 2}, result.EndPos)
	})

	t.Run("stops at the boundary", func(t *testing.T) {
		svc, sessions := newTestService(t)
		raw, err := engine.ParseString("3 3\nS E\n# #\n###\n")
		require.NoError(t, err)
		sess, err := sessions.Create("edge", "edge", raw)
		require.NoError(t, err)

		result, err := svc.BulkMove(ctx, sess.ID, []string{"up"}, false)
		require.NoError(t, err)
		assert.Equal(t, "blocked_boundary", result.StopReasonCode)
		assert.True(t, result.AttemptedTo.Boundary)
	})

	t.Run("rejects invalid directions before moving", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		_, err := svc.BulkMove(ctx, id, []string{"down", "jump"}, false)
		assert.ErrorIs(t, err, engine.ErrInvalidDirection)

		state, err := svc.GetGameState(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, engine.Position{Row: 1, Col: 1}, state.PlayerPos)
	})

	t.Run("truncates long requests", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		moves := make([]string, 0, engine.MaxBulkMoves+10)
		for len(moves) < engine.MaxBulkMoves+10 {
			moves = append(moves, "right", "left")
		}

		result, err := svc.BulkMove(ctx, id, moves, false)
		require.NoError(t, err)
		assert.True(t, result.Truncated)
		assert.Equal(t, engine.MaxBulkMoves, result.MovesExecuted)
	})
}

func TestResetAndReplay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc, "loop")

	_, err := svc.BulkMove(ctx, id, []string{"right", "left", "right"}, false)
	require.NoError(t, err)

	state, err := svc.ReplayReset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, engine.Position{Row: 1, Col: 2}, state.PlayerPos)
	assert.Equal(t, []engine.Position{{Row: 1, Col: 2}}, state.Visited)
	assert.Empty(t, state.Revisited)

	state, err = svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, engine.Position{Row: 1, Col: 1}, state.PlayerPos)
	assert.Equal(t, 3, state.TotalMoves)
	assert.Equal(t, 0, state.CurrentMovesCount)
}

func TestSolve(t *testing.T) {
	ctx := context.Background()

	t.Run("show only", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		result, err := svc.Solve(ctx, id, service.SolveOptions{})
		require.NoError(t, err)
		assert.True(t, result.Solution.Solvable)
		assert.False(t, result.Applied)
		assert.Len(t, result.Solution.Moves, 8)
		assert.Equal(t, "#*### #", result.Lines[2])
		assert.Equal(t, engine.Position{Row: 1, Col: 1}, result.GameState.PlayerPos)
	})

	t.Run("apply walks every step", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		var steps []service.SolveStep
		result, err := svc.Solve(ctx, id, service.SolveOptions{
			Apply:  true,
			OnStep: func(step service.SolveStep) { steps = append(steps, step) },
		})
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.True(t, result.GameState.Completed)
		require.Len(t, steps, 8)

		for i, step := range steps {
			assert.Equal(t, i, step.Index)
			assert.Equal(t, 8, step.Total)
			assert.True(t, step.Move.Moved)
			assert.Equal(t, result.Solution.Path[i+1], step.GameState.PlayerPos)
		}
	})

	t.Run("unsolvable", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "walled")

		result, err := svc.Solve(ctx, id, service.SolveOptions{Apply: true})
		require.NoError(t, err)
		assert.False(t, result.Solution.Solvable)
		assert.False(t, result.Applied)
		assert.Equal(t, "There is no solution", result.Message)
	})

	t.Run("cancelled context stops the replay", func(t *testing.T) {
		svc, _ := newTestService(t)
		id := createSession(t, svc, "loop")

		cctx, cancel := context.WithCancel(ctx)
		_, err := svc.Solve(cctx, id, service.SolveOptions{
			Apply:  true,
			OnStep: func(step service.SolveStep) { cancel() },
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGetMoveHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc, "loop")

	for i := 0; i < 5; i++ {
		_, err := svc.Move(ctx, id, "up", false)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		opts      service.HistoryOptions
		wantLen   int
		wantFirst int
		hasNext   bool
	}{
		{"defaults newest first", service.HistoryOptions{}, 5, 5, false},
		{"ascending page 1", service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"}, 2, 1, true},
		{"ascending page 3", service.HistoryOptions{Page: 3, Limit: 2, Order: "asc"}, 1, 5, false},
		{"descending page 2", service.HistoryOptions{Page: 2, Limit: 2, Order: "desc"}, 2, 3, true},
		{"past the end", service.HistoryOptions{Page: 9, Limit: 2, Order: "asc"}, 0, 0, false},
		{"huge page ascending", service.HistoryOptions{Page: math.MaxInt64 / 50, Limit: 100, Order: "asc"}, 0, 0, false},
		{"huge page descending", service.HistoryOptions{Page: math.MaxInt, Limit: 100, Order: "desc"}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetMoveHistory(ctx, id, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 5, resp.TotalMoves)
			require.Len(t, resp.Moves, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, resp.Moves[0].MoveNumber)
			}
			assert.Equal(t, tt.hasNext, resp.HasNext)
		})
	}
}

func TestDescribeCell(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc, "loop")
	_, _ = svc.Move(ctx, id, "up", false)

	start, err := svc.DescribeCell(ctx, id, engine.Position{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.True(t, start.IsPlayer)
	assert.True(t, start.Visited)
	assert.Equal(t, 1, start.Revisits)
	assert.Equal(t, engine.Open, start.Symbol)

	exit, err := svc.DescribeCell(ctx, id, engine.Position{Row: 5, Col: 5})
	require.NoError(t, err)
	assert.True(t, exit.IsExit)
	assert.True(t, exit.Passable)

	outside, err := svc.DescribeCell(ctx, id, engine.Position{Row: -1, Col: 0})
	require.NoError(t, err)
	assert.False(t, outside.InBounds)
	assert.False(t, outside.Passable)
}

func TestMazeLibrary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mazes, err := svc.ListMazes(ctx)
	require.NoError(t, err)
	require.Len(t, mazes, 2)
	assert.True(t, mazes[0].Solvable)
	assert.Equal(t, 8, mazes[0].SolutionLength)
	assert.False(t, mazes[1].Solvable)

	detail, err := svc.LoadMaze(ctx, "loop.txt")
	require.NoError(t, err)
	assert.Equal(t, loopMaze, detail.Content)
	assert.Equal(t, "#@    #", detail.Lines[1])

	_, err = svc.LoadMaze(ctx, "nope")
	assert.ErrorIs(t, err, engine.ErrNotFound)

	info, err := svc.SaveMaze(ctx, "tiny", "3 3\n#S#\n# #\n#E#\n")
	require.NoError(t, err)
	assert.Equal(t, "tiny", info.MazeID)
	assert.Equal(t, 2, info.SolutionLength)

	_, err = svc.SaveMaze(ctx, "bad", "4 3\n")
	assert.ErrorIs(t, err, engine.ErrMalformedFormat)
}
