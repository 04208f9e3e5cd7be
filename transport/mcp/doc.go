// Package mcp exposes the maze game to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API served by the api package, and the JSON response is rendered as
// text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state, move, bulk_move, reset_game, replay, solve, move_history
//   - list_mazes, get_maze, save_maze
//   - describe_cell, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// Logs must not go to stdout while serving over stdio.
package mcp
