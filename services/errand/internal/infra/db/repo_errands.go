package db

import (
	"context"
	"errors"
	"time"

	"campus/services/errand/internal/domain/errands"

	"gorm.io/gorm"
)

type ErrandRepository struct {
	db *gorm.DB
}

func NewErrandRepository(db *gorm.DB) *ErrandRepository {
	return &ErrandRepository{db: db}
}

func (r *ErrandRepository) Create(ctx context.Context, errand errands.Errand) (errands.Errand, error) {
	if r.db == nil {
		return errands.Errand{}, errDBUnavailable
	}
	model := ErrandModel{
		PublisherID: errand.PublisherID,
		Title:       errand.Title,
		Detail:      errand.Detail,
		RewardCents: errand.RewardCents,
		Status:      string(errand.Status),
		CreatedAt:   errand.CreatedAt,
		UpdatedAt:   errand.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return errands.Errand{}, err
	}
	errand.ID = model.ID
	return errand, nil
}

func (r *ErrandRepository) FindByID(ctx context.Context, id int64) (errands.Errand, error) {
	if r.db == nil {
		return errands.Errand{}, errDBUnavailable
	}
	var model ErrandModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errands.Errand{}, errands.ErrNotFound
		}
		return errands.Errand{}, err
	}
	return toErrand(model), nil
}

func (r *ErrandRepository) ListOpen(ctx context.Context) ([]errands.Errand, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ErrandModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(errands.StatusOpen)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toErrands(models), nil
}

func (r *ErrandRepository) ListByUser(ctx context.Context, userID int64) ([]errands.Errand, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ErrandModel
	err := r.db.WithContext(ctx).
		Where("publisher_id = ? OR runner_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toErrands(models), nil
}

// Accept moves an open errand to accepted and records the runner. The
// conditional update keeps two concurrent runners from both winning.
func (r *ErrandRepository) Accept(ctx context.Context, id, runnerID int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&ErrandModel{}).
		Where("id = ? AND status = ? AND publisher_id <> ?", id, string(errands.StatusOpen), runnerID).
		Updates(map[string]any{
			"status":     string(errands.StatusAccepted),
			"runner_id":  runnerID,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errands.ErrConflict
	}
	return nil
}

func (r *ErrandRepository) UpdateStatus(ctx context.Context, id int64, from, to errands.Status) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&ErrandModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errands.ErrConflict
	}
	return nil
}

func toErrand(model ErrandModel) errands.Errand {
	return errands.Errand{
		ID:          model.ID,
		PublisherID: model.PublisherID,
		RunnerID:    model.RunnerID,
		Title:       model.Title,
		Detail:      model.Detail,
		RewardCents: model.RewardCents,
		Status:      errands.Status(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toErrands(models []ErrandModel) []errands.Errand {
	out := make([]errands.Errand, 0, len(models))
	for _, model := range models {
		out = append(out, toErrand(model))
	}
	return out
}
