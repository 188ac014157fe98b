package index

import (
	"sync"

	"medichat/internal/logger"
)

// Loader memoizes the one-time load of the persisted index. The index is
// read-only after load, so every later call shares the same result instead
// of re-reading disk. An index placed after the first load is only picked up
// on restart.
type Loader struct {
	path string
	once sync.Once
	ix   *Index
	err  error
}

// NewLoader creates a loader for the index directory at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load opens the index on the first call and returns the cached result on
// every call after. A nil index with a nil error means no index exists at
// the configured path.
func (l *Loader) Load() (*Index, error) {
	l.once.Do(func() {
		l.ix, l.err = Open(l.path)
		switch {
		case l.err != nil:
			logger.Warn("index load failed: %v", l.err)
		case l.ix == nil:
			logger.Info("no index found at %s", l.path)
		default:
			logger.Info("loaded index from %s (%d passages, dim %d)", l.path, l.ix.Len(), l.ix.Dimension())
		}
	})
	return l.ix, l.err
}

// Path returns the configured index directory.
func (l *Loader) Path() string { return l.path }
