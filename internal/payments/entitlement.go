package payments

import "resume-ai-backend/internal/resumes"

// RequireEntitlement checks that the paid analysis has been unlocked for the
// resume. Pure predicate; callers decide how to surface ErrNotEntitled.
func RequireEntitlement(resume resumes.Resume) error {
	if !resume.AnalysisPurchased {
		return ErrNotEntitled
	}
	return nil
}
