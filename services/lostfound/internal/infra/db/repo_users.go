package db

import (
	"context"
	"errors"
	"strings"

	"campus/services/lostfound/internal/domain/users"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user users.User) (users.User, error) {
	if r.db == nil {
		return users.User{}, errDBUnavailable
	}
	model := UserModel{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return users.User{}, users.ErrAlreadyExists
		}
		return users.User{}, err
	}
	user.ID = model.ID
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (users.User, error) {
	if r.db == nil {
		return users.User{}, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return toUser(model), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (users.User, error) {
	if r.db == nil {
		return users.User{}, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return toUser(model), nil
}

func (r *UserRepository) List(ctx context.Context) ([]users.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]users.User, 0, len(models))
	for _, model := range models {
		out = append(out, toUser(model))
	}
	return out, nil
}

func toUser(model UserModel) users.User {
	return users.User{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		Email:        model.Email,
		Role:         model.Role,
		Status:       model.Status,
		CreatedAt:    model.CreatedAt,
	}
}
