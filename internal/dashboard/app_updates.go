package dashboard

import (
	"context"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/validation"
)

// AppUpdates is the release metadata slice
type AppUpdates struct {
	slice[domain.AppUpdate]
	svc      domain.AppUpdateService
	validate *validation.Validator
}

func NewAppUpdates(svc domain.AppUpdateService, validate *validation.Validator, notifier domain.Notifier, log logger.Logger) *AppUpdates {
	if validate == nil {
		validate = validation.New()
	}
	return &AppUpdates{
		slice:    newSlice("app updates", func(u domain.AppUpdate) domain.ID { return u.ID }, notifier, log),
		svc:      svc,
		validate: validate,
	}
}

func (a *AppUpdates) Load(ctx context.Context, q domain.PageQuery) error {
	return a.load(ctx, func(ctx context.Context) (*domain.ListResult[domain.AppUpdate], error) {
		return a.svc.List(ctx, q)
	})
}

func (a *AppUpdates) Create(ctx context.Context, in domain.AppUpdateInput) (*domain.AppUpdate, error) {
	if err := a.validate.Struct(in); err != nil {
		return nil, err
	}
	item := applyUpdateInput(domain.AppUpdate{ID: pendingID()}, in)
	return a.upsert(ctx, item, "App update created successfully", "Failed to create app update", func(ctx context.Context) (*domain.AppUpdate, error) {
		return a.svc.Create(ctx, in)
	})
}

func (a *AppUpdates) Update(ctx context.Context, id domain.ID, in domain.AppUpdateInput) (*domain.AppUpdate, error) {
	if err := a.validate.Struct(in); err != nil {
		return nil, err
	}
	item, listed := a.find(id)
	return a.save(ctx, listed, applyUpdateInput(item, in), "App update saved successfully", "Failed to save app update", func(ctx context.Context) (*domain.AppUpdate, error) {
		return a.svc.Update(ctx, id, in)
	})
}

// SetActive toggles whether clients are offered the release
func (a *AppUpdates) SetActive(ctx context.Context, id domain.ID, active bool) (*domain.AppUpdate, error) {
	item, listed := a.find(id)
	item.IsActive = active
	message := "App update deactivated"
	if active {
		message = "App update activated"
	}
	return a.save(ctx, listed, item, message, "Failed to change app update status", func(ctx context.Context) (*domain.AppUpdate, error) {
		return a.svc.SetActive(ctx, id, active)
	})
}

func (a *AppUpdates) Delete(ctx context.Context, id domain.ID) error {
	return a.remove(ctx, id, "App update deleted successfully", "Failed to delete app update", func(ctx context.Context) error {
		return a.svc.Delete(ctx, id)
	})
}

func applyUpdateInput(u domain.AppUpdate, in domain.AppUpdateInput) domain.AppUpdate {
	u.Version = in.Version
	u.Platform = in.Platform
	u.Notes = in.Notes
	u.DownloadURL = in.DownloadURL
	u.IsMandatory = in.IsMandatory
	return u
}
