// Package websocket provides the WebSocket push channel for the maze game.
//
// A central Hub owns every connection. Clients join a session with
// "/ws?session=<id>" and receive JSON messages for that session only:
//
//	{"session_id": "3f9a1c2e", "event": "state_update", "game_state": {...}}
//
// Events are state_update after moves, reset after a reset, solution_step for
// each move of an animated solve and solution_complete when it ends.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
//
// The session map is only touched by the Run goroutine. Broadcasts are queued
// on a channel and delivered in order; a client whose send buffer is full is
// dropped.
package websocket
