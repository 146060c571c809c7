package watch

import "errors"

// ErrWatcherUnavailable is returned when the underlying fsnotify watcher
// cannot be created or fails while watching.
var ErrWatcherUnavailable = errors.New("watch: file watcher unavailable")
