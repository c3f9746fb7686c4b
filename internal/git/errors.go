package git

import "errors"

// Metadata errors
var (
	ErrNotRepository = errors.New("source folder is not a git repository")
	ErrNoRemoteURL   = errors.New("remote has no usable URL")
)
