// Package proclock provides a per-host advisory lock so that at most one
// planning run touches the database and the switch at a time. Cron fires the
// planner every hour; a stuck run must not be joined by the next one.
package proclock

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

// Lock is a held advisory file lock.
type Lock struct {
	path string
	file *os.File
}

// Acquire takes the lock at path without blocking. A second caller gets an
// error while the first one holds it. The lock file carries "pid:timestamp"
// for post-mortem inspection; its content is informational only, the lock
// itself is the flock.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("another run holds %s: %w", path, err)
	}
	if err := f.Truncate(0); err == nil {
		_, _ = fmt.Fprintf(f, "%d:%d", os.Getpid(), time.Now().Unix())
		_ = f.Sync()
	}
	return &Lock{path: path, file: f}, nil
}

// Release drops the lock and removes the file. Safe to call once.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	_ = os.Remove(l.path)
	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
