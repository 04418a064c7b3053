// Package driver runs the front end over files and directories.
//
// A compilation unit is one source file with its own line index and its own
// diagnostic bag. Units never share mutable state, so a directory is parsed
// by a bounded pool of goroutines, one unit per task.
package driver
