// Package service provides the business logic layer for the maze game.
//
// The service package implements:
//   - Multi-session game management
//   - Maze library access (list, load, save)
//   - Move processing, bulk moves and reset
//   - Automatic solving with optional step-by-step replay
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface used by the REST API, the
// WebSocket hub and the MCP tools. SessionManager stores sessions and
// MazeManager loads maze files.
//
// Architecture:
//
// The service layer sits between the transports and the game engine. All
// engine mutations run under the service lock, so a session never has two
// writers. Each session owns its own engine instance.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	mazeMgr, _ := mazes.NewManager("mazes")
//	gameService := service.NewGameService(sessionMgr, mazeMgr)
//
//	info, err := gameService.CreateSession(ctx, "maze001")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "right", false)
//
//	solved, err := gameService.Solve(ctx, info.ID, service.SolveOptions{Apply: true})
package service
