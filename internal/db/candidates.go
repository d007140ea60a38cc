package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const candidateColumns = `id, job_id, filename, content_hash, name, email, phone, github, linkedin,
	extracted_skills, match_score, decision, created_at`

// InsertCandidate stores a new candidate and returns the created row
func (db *DB) InsertCandidate(ctx context.Context, input *CandidateInput) (*Candidate, error) {
	if input == nil || input.Result == nil {
		return nil, fmt.Errorf("candidate input has no extraction result")
	}

	r := input.Result
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}

	var score *float64
	var decision *string
	if input.Match != nil {
		score = &input.Match.Score
		decision = &input.Match.Decision
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, job_id, filename, content_hash, name, email, phone,
		                         github, linkedin, extracted_skills, match_score, decision)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+candidateColumns,
		uuid.New(), input.JobID, nullIfEmpty(input.Filename), nullIfEmpty(input.ContentHash),
		r.Name, nullIfEmpty(r.Email), nullIfEmpty(r.Phone),
		nullIfEmpty(r.Links.GitHub), nullIfEmpty(r.Links.LinkedIn),
		skills, score, decision,
	)

	c, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert candidate: %w", err)
	}
	return c, nil
}

// GetCandidate retrieves a candidate by ID. Returns nil, nil when it does not exist.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	c, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// ListCandidatesByJob returns every candidate stored for a job, best match first
func (db *DB) ListCandidatesByJob(ctx context.Context, jobID uuid.UUID) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE job_id = $1
		 ORDER BY match_score DESC NULLS LAST, created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

// FindCandidateByHash returns the most recent candidate stored for a file hash within
// a job, or nil, nil when none exists.
func (db *DB) FindCandidateByHash(ctx context.Context, jobID uuid.UUID, contentHash string) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE job_id = $1 AND content_hash = $2
		 ORDER BY created_at DESC LIMIT 1`,
		jobID, contentHash,
	)

	c, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find candidate by hash: %w", err)
	}
	return c, nil
}

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	err := row.Scan(&c.ID, &c.JobID, &c.Filename, &c.ContentHash, &c.Name, &c.Email, &c.Phone,
		&c.GitHub, &c.LinkedIn, &c.Skills, &c.MatchScore, &c.Decision, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return &c, nil
}
