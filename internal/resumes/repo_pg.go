package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, professional_summary, skills, personal_info, experience, projects, education, analysis_purchased, created_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    title,
    professional_summary,
    skills,
    personal_info,
    experience,
    projects,
    education,
    analysis_purchased,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	skills, personalInfo, experience, projects, education, err := marshalContent(resume)
	if err != nil {
		return err
	}

	createdAt := resume.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := resume.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.ProfessionalSummary,
		skills,
		personalInfo,
		experience,
		projects,
		education,
		resume.AnalysisPurchased,
		createdAt,
		updatedAt,
	)
	return err
}

// GetByOwner fetches a resume by ID scoped to its owner.
func (r *PGRepo) GetByOwner(ctx context.Context, id, userID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id, userID)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByOwner lists resumes for a user, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// MarkAnalysisPurchased flips the entitlement flag in a single conditional
// update. Re-marking a purchased resume affects one row and succeeds, so
// duplicate verifications stay idempotent.
func (r *PGRepo) MarkAnalysisPurchased(ctx context.Context, id, userID string) error {
	const query = `
UPDATE resumes
SET analysis_purchased = TRUE, updated_at = $3
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a resume owned by the user.
func (r *PGRepo) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var skills, personalInfo, experience, projects, education []byte
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.ProfessionalSummary,
		&skills,
		&personalInfo,
		&experience,
		&projects,
		&education,
		&resume.AnalysisPurchased,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if err := unmarshalInto(skills, &resume.Skills); err != nil {
		return Resume{}, err
	}
	if err := unmarshalInto(personalInfo, &resume.PersonalInfo); err != nil {
		return Resume{}, err
	}
	if err := unmarshalInto(experience, &resume.Experience); err != nil {
		return Resume{}, err
	}
	if err := unmarshalInto(projects, &resume.Projects); err != nil {
		return Resume{}, err
	}
	if err := unmarshalInto(education, &resume.Education); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func marshalContent(resume Resume) (skills, personalInfo, experience, projects, education []byte, err error) {
	if skills, err = marshalOr(resume.Skills, "[]"); err != nil {
		return
	}
	if personalInfo, err = marshalOr(resume.PersonalInfo, "{}"); err != nil {
		return
	}
	if experience, err = marshalOr(resume.Experience, "[]"); err != nil {
		return
	}
	if projects, err = marshalOr(resume.Projects, "[]"); err != nil {
		return
	}
	education, err = marshalOr(resume.Education, "[]")
	return
}

func marshalOr(v any, empty string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal resume content: %w", err)
	}
	if string(data) == "null" {
		return []byte(empty), nil
	}
	return data, nil
}

func unmarshalInto(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal resume content: %w", err)
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
