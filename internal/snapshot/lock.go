package snapshot

import (
	"fmt"

	"github.com/gofrs/flock"
)

func acquireLock(target string) (*flock.Flock, error) {
	lock := flock.New(target + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	return lock, nil
}

func releaseLock(lock *flock.Flock) error {
	if lock == nil {
		return nil
	}
	if err := lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// LockHeld reports whether another owner holds the catalog lock for target.
func LockHeld(target string) (bool, error) {
	lock := flock.New(target + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe lock: %w", err)
	}
	if !ok {
		return true, nil
	}
	return false, releaseLock(lock)
}
