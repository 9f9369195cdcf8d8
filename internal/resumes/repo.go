package resumes

import "context"

// Repo defines persistence operations for resumes.
//
// All lookups are scoped by owner: a resume that exists under another user
// behaves exactly like a missing one.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByOwner(ctx context.Context, id, userID string) (Resume, error)
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	// MarkAnalysisPurchased flips analysis_purchased to true as a single
	// conditional update. It returns ErrNotFound if the resume does not
	// belong to the user; flipping an already-purchased resume is a no-op
	// that still succeeds.
	MarkAnalysisPurchased(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}
