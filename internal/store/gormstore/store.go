package gormstore

import (
	"context"
	"errors"

	"socialfeed/internal/db"
	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"gorm.io/gorm"
)

// Store implements store.Store on any gorm dialect.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return db.Migrate(s.db.WithContext(ctx))
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	default:
		return err
	}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) FindUsersByEmailOrUsername(ctx context.Context, email, username string) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		Order("created_at ASC").
		Find(&users).Error
	return users, translate(err)
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		patch.Apply(&user)
		return tx.Model(&user).Updates(patchColumns(patch)).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func patchColumns(patch models.UserPatch) map[string]interface{} {
	columns := map[string]interface{}{}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.LastName != nil {
		columns["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		columns["email"] = *patch.Email
	}
	if patch.Username != nil {
		columns["username"] = *patch.Username
	}
	if patch.Password != nil {
		columns["password"] = *patch.Password
	}
	if patch.ProfileImage != nil {
		columns["profile_image"] = *patch.ProfileImage
	}
	return columns
}
