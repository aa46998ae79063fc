package dashboard

import (
	"context"
	"fmt"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
)

// Tutors is the tutor request review slice
type Tutors struct {
	slice[domain.TutorRequest]
	svc domain.TutorService
}

func NewTutors(svc domain.TutorService, notifier domain.Notifier, log logger.Logger) *Tutors {
	return &Tutors{
		slice: newSlice("tutor requests", func(t domain.TutorRequest) domain.ID { return t.ID }, notifier, log),
		svc:   svc,
	}
}

// Load fetches one page; an empty status lists every request
func (t *Tutors) Load(ctx context.Context, status domain.TutorRequestStatus, q domain.PageQuery) error {
	return t.load(ctx, func(ctx context.Context) (*domain.ListResult[domain.TutorRequest], error) {
		return t.svc.List(ctx, status, q)
	})
}

// SetStatus approves or rejects a request, showing the new status right away
func (t *Tutors) SetStatus(ctx context.Context, id domain.ID, status domain.TutorRequestStatus) (*domain.TutorRequest, error) {
	switch status {
	case domain.TutorPending, domain.TutorApproved, domain.TutorRejected:
	default:
		return nil, fmt.Errorf("unknown tutor request status %q", status)
	}
	item, listed := t.find(id)
	item.Status = status
	return t.save(ctx, listed, item, "Tutor request "+string(status), "Failed to update tutor request", func(ctx context.Context) (*domain.TutorRequest, error) {
		return t.svc.SetStatus(ctx, id, status)
	})
}

func (t *Tutors) Delete(ctx context.Context, id domain.ID) error {
	return t.remove(ctx, id, "Tutor request deleted successfully", "Failed to delete tutor request", func(ctx context.Context) error {
		return t.svc.Delete(ctx, id)
	})
}
