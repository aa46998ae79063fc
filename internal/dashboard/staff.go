package dashboard

import (
	"context"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/validation"
)

// Staff is the staff list slice
type Staff struct {
	slice[domain.Staff]
	svc      domain.StaffService
	validate *validation.Validator
}

func NewStaff(svc domain.StaffService, validate *validation.Validator, notifier domain.Notifier, log logger.Logger) *Staff {
	if validate == nil {
		validate = validation.New()
	}
	return &Staff{
		slice:    newSlice("staff", func(s domain.Staff) domain.ID { return s.ID }, notifier, log),
		svc:      svc,
		validate: validate,
	}
}

// Load fetches one page; premium filters on the premium flag when not nil
func (s *Staff) Load(ctx context.Context, premium *bool, q domain.PageQuery) error {
	return s.load(ctx, func(ctx context.Context) (*domain.ListResult[domain.Staff], error) {
		return s.svc.List(ctx, premium, q)
	})
}

func (s *Staff) Create(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := s.validate.Image("photo", in.Photo); err != nil {
		return nil, err
	}
	item := domain.Staff{
		ID:          pendingID(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Subject:     in.Subject,
		IsPremium:   in.IsPremium,
	}
	return s.upsert(ctx, item, "Staff member added successfully", "Failed to add staff member", func(ctx context.Context) (*domain.Staff, error) {
		return s.svc.Create(ctx, in)
	})
}

// Update applies patch to the listed member right away
func (s *Staff) Update(ctx context.Context, id domain.ID, patch domain.StaffPatch) (*domain.Staff, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, err
	}
	persist := func(ctx context.Context) (*domain.Staff, error) {
		return s.svc.Update(ctx, id, patch)
	}

	item, listed := s.find(id)
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Email != nil {
		item.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		item.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Subject != nil {
		item.Subject = *patch.Subject
	}
	if patch.IsPremium != nil {
		item.IsPremium = *patch.IsPremium
	}
	return s.save(ctx, listed, item, "Staff member updated successfully", "Failed to update staff member", persist)
}

func (s *Staff) Delete(ctx context.Context, id domain.ID) error {
	return s.remove(ctx, id, "Staff member deleted successfully", "Failed to delete staff member", func(ctx context.Context) error {
		return s.svc.Delete(ctx, id)
	})
}
