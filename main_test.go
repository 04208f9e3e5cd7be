package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mazegame/game/engine"
	"github.com/wricardo/mazegame/transport/mcp"
)

const corridorMaze = `7 7
#######
#S    #
##### #
#     #
# #####
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

func writeMaze(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "Maze Game Server", AppName)
}

func TestNewApp(t *testing.T) {
	app := newApp()

	assert.Equal(t, "mazegame", app.Name)
	assert.Equal(t, "serve", app.DefaultCommand)

	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"serve", "mcp", "play", "solve"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSolveCommand(t *testing.T) {
	path := writeMaze(t, t.TempDir(), "corridor.txt", corridorMaze)
	require.NoError(t, newApp().Run(context.Background(), []string{"mazegame", "solve", path}))

	err := newApp().Run(context.Background(), []string{"mazegame", "solve"})
	assert.Error(t, err)
}

func TestInitializeServices(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("maze directory", func(t *testing.T) {
		dir := t.TempDir()
		writeMaze(t, dir, "maze001.txt", corridorMaze)

		svc, err := initializeServices(ctx, dir)
		require.NoError(t, err)

		info, err := svc.CreateSession(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "maze001", info.MazeName)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := initializeServices(ctx, "/non/existent/path")
		assert.Error(t, err)
	})
}

func TestPrintSolution(t *testing.T) {
	dir := t.TempDir()

	t.Run("solvable", func(t *testing.T) {
		eng, err := loadEngine(writeMaze(t, dir, "corridor.txt", corridorMaze))
		require.NoError(t, err)

		var out bytes.Buffer
		printSolution(&out, eng)

		text := out.String()
		assert.Contains(t, text, "#@****#")
		assert.Contains(t, text, "Solution found: 16 moves")
		assert.Contains(t, text, "right right right right down down")
	})

	t.Run("unsolvable", func(t *testing.T) {
		eng, err := loadEngine(writeMaze(t, dir, "walled.txt", walledMaze))
		require.NoError(t, err)

		var out bytes.Buffer
		printSolution(&out, eng)
		assert.Equal(t, "There is no solution\n", out.String())
	})

	t.Run("bad file", func(t *testing.T) {
		_, err := loadEngine(filepath.Join(dir, "nope.txt"))
		assert.ErrorIs(t, err, engine.ErrNotFound)
	})
}

func newConsole(t *testing.T, maze, input string) (*Console, *bytes.Buffer) {
	t.Helper()
	raw, err := engine.ParseString(maze)
	require.NoError(t, err)
	eng, err := engine.NewEngine("test", raw)
	require.NoError(t, err)

	var out bytes.Buffer
	return &Console{Engine: eng, In: strings.NewReader(input), Out: &out}, &out
}

func TestConsole(t *testing.T) {
	t.Run("bad input is an illegitimate move", func(t *testing.T) {
		console, out := newConsole(t, corridorMaze, "x\nq\n")
		require.NoError(t, console.Run(context.Background()))
		assert.Contains(t, out.String(), "Illegitimate move")
		assert.Contains(t, out.String(), "Bye!")
	})

	t.Run("wall bump keeps the player in place", func(t *testing.T) {
		console, out := newConsole(t, corridorMaze, "w\nq\n")
		require.NoError(t, console.Run(context.Background()))
		assert.Contains(t, out.String(), "Can't move up: wall at (0,1)")
		assert.Equal(t, engine.Position{Row: 1, Col: 1}, console.Engine.GetPlayerPosition())
	})

	t.Run("keys walk the maze to the exit", func(t *testing.T) {
		keys := strings.Repeat("d\n", 4) + "s\ns\n" + strings.Repeat("a\n", 4) + "s\ns\n" + strings.Repeat("d\n", 4) + "n\n"
		console, out := newConsole(t, corridorMaze, keys)
		require.NoError(t, console.Run(context.Background()))
		assert.Contains(t, out.String(), "You have solved the maze!")
		assert.Contains(t, out.String(), "Play again? (y/n)")
		assert.True(t, console.Engine.IsCompleted())
	})

	t.Run("solution animates to the exit and play again resets", func(t *testing.T) {
		console, out := newConsole(t, corridorMaze, "solution\ny\nq\n")
		require.NoError(t, console.Run(context.Background()))
		assert.Contains(t, out.String(), "Solution found: 16 moves")
		assert.Contains(t, out.String(), "You have solved the maze!")
		assert.Equal(t, engine.Position{Row: 1, Col: 1}, console.Engine.GetPlayerPosition())
		assert.False(t, console.Engine.IsCompleted())
	})

	t.Run("solution on an unsolvable maze", func(t *testing.T) {
		console, out := newConsole(t, walledMaze, "solution\nq\n")
		require.NoError(t, console.Run(context.Background()))
		assert.Contains(t, out.String(), "There is no solution")
	})

	t.Run("end of input stops the loop", func(t *testing.T) {
		console, _ := newConsole(t, corridorMaze, "right\n")
		require.NoError(t, console.Run(context.Background()))
		assert.Equal(t, engine.Position{Row: 1, Col: 2}, console.Engine.GetPlayerPosition())
	})
}

func TestMCPEndpoint(t *testing.T) {
	router := newRouter(http.NotFoundHandler(), mcp.NewClient("http://127.0.0.1:0"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mcp", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jsonrpc":"2.0"`)
}

func TestAPIReachable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer healthy.Close()

	assert.True(t, apiReachable(context.Background(), healthy.URL))
	assert.False(t, apiReachable(context.Background(), "http://127.0.0.1:1"))
}
