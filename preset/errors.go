package preset

import "errors"

var (
	// ErrUnknownPreset is returned when a name matches no built-in or loaded preset
	ErrUnknownPreset = errors.New("preset: unknown preset")

	// ErrInvalidPreset reports a file entry that cannot produce a tree
	ErrInvalidPreset = errors.New("preset: invalid entry")
)
