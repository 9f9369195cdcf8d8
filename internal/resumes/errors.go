package resumes

import "errors"

var (
	// ErrNotFound is returned when a resume does not exist or is not owned
	// by the requester. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("resume not found")
)
