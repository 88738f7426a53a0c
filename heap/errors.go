package heap

import "errors"

var (
	// ErrArenaTooSmall indicates the buffer cannot hold the sentinel, the
	// terminal, and at least two usable cells.
	ErrArenaTooSmall = errors.New("heap: arena smaller than four cells")

	// ErrArenaTooLarge indicates the buffer exceeds what 15-bit cell
	// indices can address.
	ErrArenaTooLarge = errors.New("heap: arena larger than 32768 cells")
)
