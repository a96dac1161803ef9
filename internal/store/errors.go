package store

import "errors"

var (
	// ErrPersist wraps every failure to write the backing file. The mutation
	// that triggered the write has been rolled back when it is returned.
	ErrPersist = errors.New("store: persist failed")

	// ErrCorrupt wraps the reason a backing file could not be loaded.
	// Open never returns it; it is reported through Recovered.
	ErrCorrupt = errors.New("store: corrupt address book")
)

// Recovery describes a backing file that was discarded at load time.
type Recovery struct {
	// Reason is why the file was not loaded.
	Reason error
	// Backup is where the unusable file was moved, empty if it was left
	// in place.
	Backup string
	// ReadOnly is set when the file exists but could not be read. It is
	// left untouched and every change fails with ErrPersist.
	ReadOnly bool
}
