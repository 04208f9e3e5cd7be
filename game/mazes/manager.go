package mazes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mazegame/game/engine"
	"github.com/wricardo/mazegame/game/service"
	"github.com/wricardo/mazegame/logger"
)

const (
	// DefaultMaze is loaded when a session is created without a maze name
	DefaultMaze = "maze001"

	mazeExt = ".txt"
)

var (
	ErrMazeNotFound = fmt.Errorf("%w: no such maze file", engine.ErrNotFound)
	ErrInvalidMaze  = errors.New("invalid maze")
	ErrInvalidName  = fmt.Errorf("%w: name must use letters, digits, '-' or '_'", ErrInvalidMaze)
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// builtinMaze is served when the maze directory holds no usable maze
const builtinMaze = `7 7
#######
#S    #
# ### #
# #   #
# # # #
#   #E#
#######
`

// Manager handles maze file loading and caching
type Manager struct {
	mazeDir     string
	defaultName string
	defaultMaze engine.RawGrid
	mazes       map[string]engine.RawGrid
	mu          sync.RWMutex
}

// NewManager creates a new maze manager over a directory of *.txt mazes
func NewManager(mazeDir string) (*Manager, error) {
	if _, err := os.Stat(mazeDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("maze directory does not exist: %s", mazeDir)
	}

	m := &Manager{
		mazeDir: mazeDir,
		mazes:   make(map[string]engine.RawGrid),
	}

	if err := m.loadDefaultMaze(); err != nil {
		return nil, fmt.Errorf("failed to load default maze: %w", err)
	}

	return m, nil
}

// LoadMaze loads a maze by name, with or without the .txt extension
func (m *Manager) LoadMaze(name string) (engine.RawGrid, error) {
	name = strings.TrimSuffix(name, mazeExt)
	if !validName.MatchString(name) {
		return nil, ErrInvalidName
	}

	m.mu.RLock()
	if raw, exists := m.mazes[name]; exists {
		m.mu.RUnlock()
		return raw, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if raw, exists := m.mazes[name]; exists {
		return raw, nil
	}

	path := filepath.Join(m.mazeDir, name+mazeExt)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMazeNotFound, name)
	}

	raw, err := engine.LoadFile(path)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: %v", ErrMazeNotFound, name, err)
		}
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidMaze, name, err)
	}

	if _, _, err := engine.FromRaw(raw); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidMaze, name, err)
	}

	m.mazes[name] = raw
	return raw, nil
}

// ListMazes returns information about all loadable mazes, sorted by name.
// Files that fail validation are skipped.
func (m *Manager) ListMazes() ([]*service.MazeInfo, error) {
	entries, err := os.ReadDir(m.mazeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze directory: %w", err)
	}

	var mazes []*service.MazeInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), mazeExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), mazeExt)
		raw, err := m.LoadMaze(name)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"maze":  entry.Name(),
				"error": err,
			}).Debug("Skipping invalid maze")
			continue
		}

		mazes = append(mazes, service.DescribeMaze(name, raw))
	}

	return mazes, nil
}

// GetDefault returns the default maze and its name
func (m *Manager) GetDefault() (string, engine.RawGrid) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName, m.defaultMaze
}

// SetDefault sets the default maze by name
func (m *Manager) SetDefault(name string) error {
	raw, err := m.LoadMaze(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = strings.TrimSuffix(name, mazeExt)
	m.defaultMaze = raw
	return nil
}

// RefreshCache drops all cached mazes and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.mazes = make(map[string]engine.RawGrid)
	m.mu.Unlock()

	return m.loadDefaultMaze()
}

// SaveMaze validates content as a maze file and writes it to disk in
// normalised form
func (m *Manager) SaveMaze(name, content string) (engine.RawGrid, error) {
	name = strings.TrimSuffix(name, mazeExt)
	if !validName.MatchString(name) {
		return nil, ErrInvalidName
	}

	raw, err := engine.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMaze, err)
	}
	if _, _, err := engine.FromRaw(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMaze, err)
	}

	path := filepath.Join(m.mazeDir, name+mazeExt)
	if err := os.WriteFile(path, []byte(raw.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write maze file: %w", err)
	}

	m.mu.Lock()
	m.mazes[name] = raw
	m.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"maze": name,
		"rows": raw.Rows(),
		"cols": raw.Cols(),
	}).Info("Maze saved")

	return raw, nil
}

// loadDefaultMaze picks maze001, then the first loadable maze, then the
// built-in maze
func (m *Manager) loadDefaultMaze() error {
	raw, err := m.LoadMaze(DefaultMaze)
	if err == nil {
		m.setDefault(DefaultMaze, raw)
		return nil
	}

	mazes, listErr := m.ListMazes()
	if listErr == nil && len(mazes) > 0 {
		if raw, err := m.LoadMaze(mazes[0].MazeID); err == nil {
			m.setDefault(mazes[0].MazeID, raw)
			return nil
		}
	}

	raw, err = engine.ParseString(builtinMaze)
	if err != nil {
		return err
	}
	m.setDefault("builtin", raw)
	return nil
}

func (m *Manager) setDefault(name string, raw engine.RawGrid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = name
	m.defaultMaze = raw
}
