package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/staffhub/staffhub/internal/logging"
	"github.com/staffhub/staffhub/internal/models"
	"github.com/staffhub/staffhub/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

type UserPatch struct {
	ContactNumber *string
	Role          *string
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, patch UserPatch) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update", "user_id", id)

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		l.Error("update_failed", "error", err)
		return nil, err
	}

	if patch.ContactNumber != nil {
		user.ContactNumber = *patch.ContactNumber
	}
	if patch.Role != nil {
		if *patch.Role == "" {
			return nil, fmt.Errorf("%w: role cannot be empty", ErrBadRequest)
		}
		user.Role = *patch.Role
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		l.Error("update_failed", "error", err)
		return nil, err
	}

	l.Info("update_success")
	return user, nil
}

// Delete refuses to remove a user who still owns positions; the
// positions foreign key would reject the row anyway, and the check keeps
// the failure inside the error taxonomy instead of surfacing a raw
// constraint violation.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "users.delete", "user_id", id)

	owned, err := s.Repo.CountPositionsByUser(ctx, id)
	if err != nil {
		l.Error("delete_failed", "error", err)
		return err
	}
	if owned > 0 {
		return fmt.Errorf("%w: user still owns positions", ErrConflict)
	}

	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		// Race window between the ownership check and the delete: a
		// position created in between still trips the constraint.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: user still owns positions", ErrConflict)
		}
		l.Error("delete_failed", "error", err)
		return err
	}

	l.Info("delete_success")
	return nil
}
