// Package session provides in-memory session management for the maze game.
//
// Each session owns its own GameEngine, so moves in one session never affect
// another. Sessions are kept in memory only and disappear when the process
// exits.
//
// Session Identifiers:
//
// Generated IDs are the first eight hex characters of a random UUID. Callers
// may also supply their own ID. Lookups are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "maze001", raw)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// The manager is safe for concurrent use. Stale sessions can be dropped with
// CleanupExpiredSessions.
package session
