package user

import (
	"context"

	"gorm.io/gorm"

	"recipeshare/entities"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdatePassword(ctx context.Context, userID string, hashedPassword string) error
		GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID string, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

// GetSubscribedAuthors lists the authors the user follows, in the order
// the subscriptions were created.
func (r *userRepository) GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscribe{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []*entities.User
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Joins("JOIN subscribes ON subscribes.author_id = users.id").
		Where("subscribes.user_id = ?", userID).
		Order("subscribes.created_at").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}
