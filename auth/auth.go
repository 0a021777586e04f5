package auth

import (
	"context"
	"errors"
	"fmt"

	"cafedir/database"
	"cafedir/model"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrNoAccount       = errors.New("no account for email")
	ErrInvalidPassword = errors.New("invalid password")
)

// Register creates an account unless one already exists for email.
func Register(ctx context.Context, db *gorm.DB, email, password string) (*model.User, error) {
	taken, err := database.Exists[model.User](ctx, db, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{Email: email, Password: hash}
	if err := database.Insert(ctx, db, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the account for email when password matches it.
func Authenticate(ctx context.Context, db *gorm.DB, email, password string) (*model.User, error) {
	user, err := database.FindOneWhere[model.User](ctx, db, "email = ?", email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNoAccount
		}
		return nil, err
	}

	ok, err := CheckPassword(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("check password for user %d: %w", user.ID, err)
	}
	if !ok {
		return nil, ErrInvalidPassword
	}
	return user, nil
}
