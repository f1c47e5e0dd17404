package db

import (
	"context"
	"errors"

	"campus/services/lostfound/internal/domain/items"

	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item items.Item) (items.Item, error) {
	if r.db == nil {
		return items.Item{}, errDBUnavailable
	}
	model := ItemModel{
		OwnerID:     item.OwnerID,
		Kind:        string(item.Kind),
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return items.Item{}, err
	}
	item.ID = model.ID
	return item, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (items.Item, error) {
	if r.db == nil {
		return items.Item{}, errDBUnavailable
	}
	var model ItemModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return items.Item{}, items.ErrNotFound
		}
		return items.Item{}, err
	}
	return toItem(model), nil
}

// ListApproved returns published items of one kind, newest first.
func (r *ItemRepository) ListApproved(ctx context.Context, kind items.Kind) ([]items.Item, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ItemModel
	err := r.db.WithContext(ctx).
		Where("kind = ? AND status = ?", string(kind), string(items.StatusApproved)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toItems(models), nil
}

func (r *ItemRepository) ListByStatus(ctx context.Context, status items.Status) ([]items.Item, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ItemModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toItems(models), nil
}

func (r *ItemRepository) Search(ctx context.Context, query string) ([]items.Item, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ItemModel
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("status = ? AND (title ILIKE ? OR description ILIKE ?)",
			string(items.StatusApproved), pattern, pattern).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toItems(models), nil
}

func (r *ItemRepository) UpdateStatus(ctx context.Context, id int64, from, to items.Status) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return items.ErrConflict
	}
	return nil
}

func toItem(model ItemModel) items.Item {
	return items.Item{
		ID:          model.ID,
		OwnerID:     model.OwnerID,
		Kind:        items.Kind(model.Kind),
		Title:       model.Title,
		Description: model.Description,
		Location:    model.Location,
		Status:      items.Status(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toItems(models []ItemModel) []items.Item {
	out := make([]items.Item, 0, len(models))
	for _, model := range models {
		out = append(out, toItem(model))
	}
	return out
}
