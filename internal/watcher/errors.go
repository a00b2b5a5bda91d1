package watcher

import "errors"

// Errors returned by the watcher.
var (
	// ErrWatcherClosed is returned when operating on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrPathNotExist is returned when watching a path that does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrNotFile is returned when watching a directory.
	ErrNotFile = errors.New("path is not a regular file")

	// ErrAlreadyWatching is returned when a file is watched twice.
	ErrAlreadyWatching = errors.New("already watching path")
)
