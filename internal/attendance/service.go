package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendease/internal/model"
)

// MarkRecord is one student's status within a marking batch.
type MarkRecord struct {
	StudentID int    `json:"studentId"`
	Status    string `json:"status"`
	Remarks   string `json:"remarks"`
}

// ErrInvalid marks a batch rejected before touching the database; handlers
// translate it to a 400.
var ErrInvalid = errors.New("invalid mark request")

// Service validates marking batches before they hit the database.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Mark validates and applies a marking batch for one session and date.
// The marker id comes from the authenticated principal, never the payload.
func (s *Service) Mark(ctx context.Context, sessionID int, date string, markedBy int, records []MarkRecord) (int, error) {
	if sessionID <= 0 {
		return 0, fmt.Errorf("%w: sessionId required", ErrInvalid)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return 0, fmt.Errorf("%w: date %q, want YYYY-MM-DD", ErrInvalid, date)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: records required", ErrInvalid)
	}
	for _, rec := range records {
		if rec.StudentID <= 0 {
			return 0, fmt.Errorf("%w: studentId required on every record", ErrInvalid)
		}
		if !model.ValidStatus(rec.Status) {
			return 0, fmt.Errorf("%w: status %q", ErrInvalid, rec.Status)
		}
	}
	if err := s.repo.MarkBatch(ctx, sessionID, date, markedBy, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
