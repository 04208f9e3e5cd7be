// Package mazes loads, caches and saves maze files from a directory.
//
// A maze is stored as <name>.txt in the maze directory. Names may only use
// letters, digits, '-' and '_', and are accepted with or without the .txt
// extension. Every maze is parsed and validated with the engine before it is
// cached, so a cached maze can always be turned into a playable grid.
//
// The default maze is maze001 when present, otherwise the first loadable
// file in the directory, otherwise a small built-in maze.
//
// Usage:
//
//	manager, err := mazes.NewManager("mazes")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	raw, err := manager.LoadMaze("maze002")
//	infos, err := manager.ListMazes()
//
// The manager is safe for concurrent use.
package mazes
