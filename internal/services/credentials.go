package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

const MinPasswordLength = 8

type PasswordStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	SetPassword(ctx context.Context, id bson.ObjectID, hash string) error
}

type Credentials struct {
	Store PasswordStore
	Cost  int
}

// Reset replaces the password of the account with the given email.
func (c Credentials) Reset(ctx context.Context, email, password string) (models.User, error) {
	if len(password) < MinPasswordLength {
		return models.User{}, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	user, err := c.Store.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("find user %s: %w", email, err)
	}
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := c.Store.SetPassword(ctx, user.ID, string(hash)); err != nil {
		return models.User{}, err
	}
	user.Password = string(hash)
	return user, nil
}

// Verify reports whether password matches the stored hash.
func (c Credentials) Verify(ctx context.Context, email, password string) (bool, models.User, error) {
	user, err := c.Store.FindByEmail(ctx, email)
	if err != nil {
		return false, models.User{}, fmt.Errorf("find user %s: %w", email, err)
	}
	if user.Password == "" {
		return false, user, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	switch {
	case err == nil:
		return true, user, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, user, nil
	}
	return false, user, fmt.Errorf("stored hash for %s is unusable: %w", email, err)
}
