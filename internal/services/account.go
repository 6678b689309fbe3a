package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"socialfeed/internal/log"
	"socialfeed/internal/media"
	"socialfeed/internal/models"
	"socialfeed/internal/store"
	"socialfeed/internal/utils"
)

type RegisterInput struct {
	Name         string        `json:"name" form:"name" validate:"required"`
	LastName     string        `json:"lastName" form:"lastName" validate:"required"`
	Email        string        `json:"email" form:"email" validate:"required"`
	Username     string        `json:"username" form:"username" validate:"required"`
	Password     string        `json:"password" form:"password" validate:"required"`
	ProfileImage *media.Upload `json:"-" form:"-"`
}

// UpdateInput is a partial profile update. Nil and empty values are ignored.
type UpdateInput struct {
	Name         *string       `json:"name" form:"name"`
	LastName     *string       `json:"lastName" form:"lastName"`
	Email        *string       `json:"email" form:"email"`
	Username     *string       `json:"username" form:"username"`
	Password     *string       `json:"password" form:"password"`
	ProfileImage *media.Upload `json:"-" form:"-"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AccountService owns users. Feeds embed author profiles, so profile updates
// purge the feed cache shared with ContentService.
type AccountService struct {
	users      store.UserStore
	media      *media.Store
	feeds      *utils.TTLCache[*store.Feed]
	bcryptCost int
}

func NewAccountService(users store.UserStore, mediaStore *media.Store, feeds *utils.TTLCache[*store.Feed], bcryptCost int) *AccountService {
	return &AccountService{users: users, media: mediaStore, feeds: feeds, bcryptCost: bcryptCost}
}

// Register creates a user. The returned user still carries the password hash.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := checkRequired(in); err != nil {
		return nil, err
	}

	existing, err := s.users.FindUsersByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup existing users: %w", err)
	}
	if field := conflictingField(existing, in.Email, in.Username, ""); field != "" {
		return nil, &ConflictError{Field: field}
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		LastName: in.LastName,
		Email:    in.Email,
		Username: in.Username,
		Password: hash,
	}
	if !in.ProfileImage.Empty() {
		name, err := s.media.Save(in.ProfileImage.Data, in.ProfileImage.Filename)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = name
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		s.discard(user.ProfileImage)
		if errors.Is(err, store.ErrDuplicate) {
			return nil, s.duplicateConflict(ctx, in.Email, "")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update applies the present fields of in to user id. Uniqueness is checked
// only for the email and username being changed.
func (s *AccountService) Update(ctx context.Context, id string, in UpdateInput) (*models.User, error) {
	current, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(EntityUser)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	patch := models.UserPatch{
		Name:     presentValue(in.Name),
		LastName: presentValue(in.LastName),
		Email:    presentValue(in.Email),
		Username: presentValue(in.Username),
	}

	if patch.Email != nil {
		other, err := s.users.FindUserByEmail(ctx, *patch.Email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, &ConflictError{Field: "email"}
		}
	}
	if patch.Username != nil {
		other, err := s.users.FindUserByUsername(ctx, *patch.Username)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("lookup username: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, &ConflictError{Field: "username"}
		}
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := utils.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hash
	}
	if !in.ProfileImage.Empty() {
		name, err := s.media.Save(in.ProfileImage.Data, in.ProfileImage.Filename)
		if err != nil {
			return nil, err
		}
		patch.ProfileImage = &name
	}

	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.users.UpdateUser(ctx, id, patch)
	if err != nil {
		if patch.ProfileImage != nil {
			s.discard(*patch.ProfileImage)
		}
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, notFound(EntityUser)
		case errors.Is(err, store.ErrDuplicate):
			email := ""
			if patch.Email != nil {
				email = *patch.Email
			}
			return nil, s.duplicateConflict(ctx, email, id)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.feeds.Purge()
	return updated, nil
}

// Login returns the user without its password. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := checkRequired(in); err != nil {
		return nil, err
	}
	user, err := s.users.FindUserByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	safe := user.WithoutPassword()
	return &safe, nil
}

// Get returns the user without its password.
func (s *AccountService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(EntityUser)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	safe := user.WithoutPassword()
	return &safe, nil
}

// conflictingField reports "email" before "username" when both collide.
func conflictingField(users []models.User, email, username, selfID string) string {
	field := ""
	for _, u := range users {
		if u.ID == selfID {
			continue
		}
		if u.Email == email {
			return "email"
		}
		if u.Username == username {
			field = "username"
		}
	}
	return field
}

// duplicateConflict names the field behind a unique index violation that
// slipped past the pre-write lookup.
func (s *AccountService) duplicateConflict(ctx context.Context, email, selfID string) error {
	if email != "" {
		if other, err := s.users.FindUserByEmail(ctx, email); err == nil && other.ID != selfID {
			return &ConflictError{Field: "email"}
		}
	}
	return &ConflictError{Field: "username"}
}

func (s *AccountService) discard(name string) {
	if name == "" {
		return
	}
	if err := s.media.Remove(name); err != nil {
		log.Errorf("remove orphan media %s: %v", name, err)
	}
}

func presentValue(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
