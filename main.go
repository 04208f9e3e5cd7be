// Command mazegame serves and plays text mazes.
//
// Commands:
//  1. "serve" (default) runs the HTTP server exposing the REST API, WebSocket and an /mcp endpoint
//  2. "mcp" runs an MCP stdio server, spinning up an internal HTTP API if none is reachable
//  3. "play <file>" plays a maze file in the terminal
//  4. "solve <file>" prints the solution of a maze file
//
// Flags and environment variables (optionally loaded from .env) control
// host/port, the maze directory, debug logging and ngrok tunneling.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazegame/game/mazes"
	"github.com/wricardo/mazegame/game/service"
	"github.com/wricardo/mazegame/game/session"
	"github.com/wricardo/mazegame/logger"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Maze Game Server"
)

const (
	sessionMaxAge       = 24 * time.Hour
	sessionCleanupEvery = time.Hour
)

func main() {
	// A missing .env file is fine
	envErr := godotenv.Load()

	logger.Init()
	if envErr == nil {
		logger.Log.Debug("Loaded environment variables from .env file")
	} else if !os.IsNotExist(envErr) {
		logger.Log.WithError(envErr).Warn("Error loading .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logger.Log.Fatal(err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "mazegame",
		Usage:   "Serve and play text mazes",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "maze-dir",
				Usage:   "Directory containing maze files",
				Value:   "mazes",
				Sources: cli.EnvVars("MAZE_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				logger.SetDebug()
			}
			return ctx, nil
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			playCommand(),
			solveCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server", "http"},
		Usage:   "Run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger.Log.Infof("Starting %s v%s", AppName, Version)

			gameService, err := initializeServices(ctx, cmd.String("maze-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			return runHTTPServer(ctx, gameService, serveOptions{
				addr:        fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port"))),
				ngrok:       cmd.Bool("ngrok"),
				ngrokAuth:   cmd.String("ngrok-auth"),
				ngrokDomain: cmd.String("ngrok-domain"),
			})
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run an MCP stdio server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8080",
				Usage:   "REST API to proxy to when it is reachable",
				Sources: cli.EnvVars("MAZEGAME_API_URL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			gameService, err := initializeServices(ctx, cmd.String("maze-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			return runStdioMCP(ctx, gameService, cmd.String("api-url"))
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a maze file in the terminal",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "delay",
				Value: 150 * time.Millisecond,
				Usage: "Pause between frames when animating the solution",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := loadEngine(cmd.Args().First())
			if err != nil {
				return err
			}
			console := &Console{
				Engine: eng,
				In:     os.Stdin,
				Out:    os.Stdout,
				Delay:  cmd.Duration("delay"),
			}
			return console.Run(ctx)
		},
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "Print the solution of a maze file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := loadEngine(cmd.Args().First())
			if err != nil {
				return err
			}
			printSolution(os.Stdout, eng)
			return nil
		},
	}
}

// initializeServices wires the maze library, the session store and the game
// service, and prunes idle sessions until ctx is done.
func initializeServices(ctx context.Context, mazeDir string) (service.GameService, error) {
	mazeManager, err := mazes.NewManager(mazeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create maze manager: %w", err)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, mazeManager)

	go sessionCleanupRoutine(ctx, sessionManager)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(sessionCleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				logger.Log.Infof("Cleaned up %d expired sessions", removed)
			}
		}
	}
}
