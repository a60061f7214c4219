package datastore

import (
	"sync"

	"github.com/rs/zerolog"
)

// fileLock is a path mutex plus the number of writers holding or waiting on it
type fileLock struct {
	mu   sync.Mutex
	refs int
}

// FileLockManager hands out one mutex per output path so concurrent writes
// to the same file are serialized. An entry lives only while some writer
// holds or waits on it.
type FileLockManager struct {
	locks   map[string]*fileLock
	mapLock sync.Mutex
	logger  zerolog.Logger
}

// NewFileLockManager creates a new FileLockManager
func NewFileLockManager(logger zerolog.Logger) *FileLockManager {
	return &FileLockManager{
		locks:  make(map[string]*fileLock),
		logger: logger.With().Str("component", "FileLockManager").Logger(),
	}
}

// Lock blocks until path is free and returns the function that releases it.
func (flm *FileLockManager) Lock(path string) (unlock func()) {
	flm.mapLock.Lock()
	lock, exists := flm.locks[path]
	if !exists {
		lock = &fileLock{}
		flm.locks[path] = lock
	}
	lock.refs++
	flm.mapLock.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()
		flm.release(path, lock)
	}
}

// release drops the entry for path once no writer references it
func (flm *FileLockManager) release(path string, lock *fileLock) {
	flm.mapLock.Lock()
	defer flm.mapLock.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(flm.locks, path)
		flm.logger.Debug().
			Str("path", path).
			Int("active_locks", len(flm.locks)).
			Msg("Released file lock")
	}
}

// Len returns the number of paths currently held or waited on
func (flm *FileLockManager) Len() int {
	flm.mapLock.Lock()
	defer flm.mapLock.Unlock()
	return len(flm.locks)
}
