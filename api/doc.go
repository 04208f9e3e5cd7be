// Package api provides the HTTP REST API for the maze game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session, body {"maze_id": "maze001"} (optional)
//   - GET /api/sessions - List sessions (sort=created|accessed, order=asc|desc, limit)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - {"direction": "up", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"directions": ["up", "right"], "reset": false}
//   - POST /api/sessions/{id}/reset - Restore the maze to its initial state
//   - POST /api/sessions/{id}/replay - Clear the traversal history, keep the position
//   - POST /api/sessions/{id}/solve - {"apply": true} walks the solution
//   - GET /api/sessions/{id}/history - Paginated move history (page, limit, order)
//   - GET /api/sessions/{id}/cells/{row}/{col} - Describe one cell
//
// Maze Library:
//   - GET /api/mazes - List maze files with their dimensions and solvability
//   - GET /api/mazes/{name} - Maze file content and rendering
//   - POST /api/mazes - {"name": "spiral", "content": "7 7\n..."} validates and saves
//
// WebSocket:
//   - GET /ws?session={id} - Live game_state, solution_step and reset events
//
// Errors are JSON objects with an "error" field. Unknown sessions and mazes
// return 404, bad directions and invalid maze files return 400. Maze file
// errors also carry a "kind" field: not_found, malformed_format,
// size_mismatch or invalid_character.
package api
