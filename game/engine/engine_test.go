package engine

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mazegame/logger"
)

func TestNewEngine(t *testing.T) {
	e := mustEngine(t, corridorMaze)

	state := e.GetState()
	assert.Equal(t, "test", state.MazeName)
	assert.Equal(t, 7, state.Rows)
	assert.Equal(t, 7, state.Cols)
	assert.Equal(t, Position{Row: 1, Col: 1}, state.PlayerPos)
	assert.Equal(t, Position{Row: 5, Col: 5}, state.Exit)
	assert.Equal(t, []Position{{Row: 1, Col: 1}}, state.Visited)
	assert.False(t, state.Completed)
	assert.Contains(t, state.Message, "Welcome")
	assert.Equal(t, "#@    #", state.Lines[1])
	assert.Equal(t, Player, state.Grid[1][1])
	assert.Equal(t, "test", e.Name())
	assert.Equal(t, 'S', e.Raw()[1][1])
}

func TestNewEngineRejectsBadMaze(t *testing.T) {
	_, err := NewEngine("bad", RawGrid{[]rune("#S#")})
	assert.ErrorIs(t, err, ErrMarkerCount)
}

func TestEngineMove(t *testing.T) {
	e := mustEngine(t, corridorMaze)

	result, err := e.Move(Right)
	require.NoError(t, err)
	assert.True(t, result.Moved)
	assert.Equal(t, Position{Row: 1, Col: 2}, e.GetPlayerPosition())

	result, err = e.Move(Up)
	require.NoError(t, err)
	assert.False(t, result.Moved)
	assert.Contains(t, e.GetState().Message, "wall")

	history := e.GetMoveHistory()
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].MoveNumber)
	assert.True(t, history[0].Success)
	assert.Equal(t, 2, history[1].MoveNumber)
	assert.False(t, history[1].Success)
	assert.True(t, history[1].Revisit)

	last := e.GetLastMove()
	require.NotNil(t, last)
	assert.Equal(t, Up, last.Action)
}

func TestEngineMoveInvalidDirection(t *testing.T) {
	e := mustEngine(t, corridorMaze)

	_, err := e.Move(Direction("jump"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Empty(t, e.GetMoveHistory())
	assert.Nil(t, e.GetLastMove())
}

func TestEngineCanMove(t *testing.T) {
	e := mustEngine(t, corridorMaze)

	assert.True(t, e.CanMove(Right))
	assert.False(t, e.CanMove(Up))
	assert.False(t, e.CanMove(Direction("jump")))
	assert.Equal(t, []Direction{Right}, e.GetPossibleMoves())
}

func TestEngineCompletesAtExit(t *testing.T) {
	e := mustEngine(t, loopMaze)

	results, err := e.BulkMove([]Direction{Down, Down, Down, Down, Right, Right, Right, Right})
	require.NoError(t, err)
	assert.Len(t, results, 8)
	for _, moved := range results {
		assert.True(t, moved)
	}

	assert.True(t, e.IsCompleted())
	state := e.GetState()
	assert.True(t, state.Completed)
	assert.Equal(t, "You have solved the maze!", state.Message)
	assert.Equal(t, Exit, e.Grid().BaseSymbolAt(e.ExitPosition()))
}

func TestEngineBulkMoveStopsOnInvalidDirection(t *testing.T) {
	e := mustEngine(t, loopMaze)

	results, err := e.BulkMove([]Direction{Down, "bogus", Down})
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, []bool{true}, results)
	assert.Equal(t, Position{Row: 2, Col: 1}, e.GetPlayerPosition())
}

func TestEngineReset(t *testing.T) {
	e := mustEngine(t, loopMaze)
	_, _ = e.Move(Down)
	_, _ = e.Move(Down)
	e.ShowSolution(e.Solve())

	state := e.Reset()

	assert.Equal(t, Position{Row: 1, Col: 1}, state.PlayerPos)
	assert.Equal(t, []Position{{Row: 1, Col: 1}}, state.Visited)
	assert.Empty(t, state.Revisited)
	assert.Empty(t, state.CurrentMoves)
	assert.Equal(t, 0, state.CurrentMovesCount)
	assert.Len(t, state.MoveHistory, 2)
	assert.Equal(t, 2, state.TotalMoves)
	assert.Equal(t, 0, CountSymbol(state.Grid, PathMarker))

	_, _ = e.Move(Right)
	state = e.GetState()
	assert.Equal(t, 3, state.MoveHistory[2].MoveNumber)
	assert.Equal(t, 1, state.CurrentMovesCount)
}

func TestEngineResetWithCorruptRawKeepsGrid(t *testing.T) {
	var buf bytes.Buffer
	logger.Log.SetOutput(&buf)
	t.Cleanup(func() { logger.Log.SetOutput(os.Stderr) })

	e := mustEngine(t, corridorMaze)
	_, err := e.Move(Right)
	require.NoError(t, err)
	e.raw = RawGrid{[]rune("#S#")}

	state := e.Reset()

	assert.Equal(t, Position{Row: 1, Col: 2}, state.PlayerPos)
	assert.Equal(t, []Position{{Row: 1, Col: 2}}, state.Visited)
	assert.Equal(t, 7, state.Rows)
	assert.Empty(t, state.CurrentMoves)
	assert.Contains(t, buf.String(), "Failed to rebuild maze on reset")
}

func TestEngineResetHistory(t *testing.T) {
	e := mustEngine(t, loopMaze)
	_, _ = e.Move(Right)
	_, _ = e.Move(Left)

	state := e.ResetHistory()

	assert.Equal(t, Position{Row: 1, Col: 1}, state.PlayerPos)
	assert.Equal(t, []Position{{Row: 1, Col: 1}}, state.Visited)
	assert.Empty(t, state.Revisited)
	assert.Empty(t, state.CurrentMoves)
	assert.Len(t, state.MoveHistory, 2)
}

func TestEngineSolveFromCurrentPosition(t *testing.T) {
	e := mustEngine(t, corridorMaze)
	_, _ = e.Move(Right)
	_, _ = e.Move(Right)

	sol := e.Solve()

	require.True(t, sol.Solvable)
	assert.Equal(t, Position{Row: 1, Col: 3}, sol.Path[0])
	assert.Len(t, sol.Moves, 14)
}

func TestEngineShowSolution(t *testing.T) {
	e := mustEngine(t, loopMaze)
	sol := e.Solve()

	e.ShowSolution(sol)

	assert.Equal(t, len(sol.Path)-2, CountSymbol(e.GetState().Grid, PathMarker))
	assert.Equal(t, "#*### #", e.Render()[2])
	assert.Contains(t, e.GetState().Message, "8 moves")

	unsolvable := mustEngine(t, walledMaze)
	unsolvable.ShowSolution(unsolvable.Solve())
	assert.Equal(t, "There is no solution", unsolvable.GetState().Message)
}

func TestEngineStateIsSnapshot(t *testing.T) {
	e := mustEngine(t, corridorMaze)
	state := e.GetState()
	state.Visited[0] = Position{Row: 9, Col: 9}

	assert.Equal(t, Position{Row: 1, Col: 1}, e.GetVisited()[0])
}

func TestLocalView(t *testing.T) {
	e := mustEngine(t, edgeMaze)

	assert.Equal(t, []string{
		"###",
		"#@ ",
		"## ",
	}, LocalView(e.Grid(), e.GetPlayerPosition()))
}
