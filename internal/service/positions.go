package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/staffhub/staffhub/internal/events"
	"github.com/staffhub/staffhub/internal/logging"
	"github.com/staffhub/staffhub/internal/models"
	"github.com/staffhub/staffhub/internal/repo"
)

type PositionService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// PositionPatch carries a partial update; nil fields keep their stored
// values.
type PositionPatch struct {
	PositionCode *string
	PositionName *string
	UserID       *uint
}

func (s *PositionService) List(ctx context.Context) ([]models.PositionRow, error) {
	return s.Repo.ListPositions(ctx)
}

func (s *PositionService) Get(ctx context.Context, id uint) (*models.PositionRow, error) {
	row, err := s.Repo.GetPositionRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: position not found", ErrNotFound)
		}
		return nil, err
	}
	return row, nil
}

func (s *PositionService) Create(ctx context.Context, code, name string, userID uint) (*models.Position, error) {
	l := logging.FromContext(ctx).With("svc", "positions.create")

	if code == "" || name == "" || userID == 0 {
		return nil, fmt.Errorf("%w: position_code, position_name and user id are required", ErrBadRequest)
	}

	exists, err := s.Repo.UserExists(ctx, userID)
	if err != nil {
		l.Error("create_failed", "error", err)
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	pos := models.Position{
		PositionCode: code,
		PositionName: name,
		UserID:       userID,
	}
	if err := s.Repo.CreatePosition(ctx, &pos); err != nil {
		l.Error("create_failed", "error", err)
		return nil, err
	}

	if err := s.Events.Publish(ctx, strconv.FormatUint(uint64(pos.PositionID), 10), map[string]any{
		"type": "position.created", "position_id": pos.PositionID, "user_id": userID,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("create_success", "position_id", pos.PositionID)
	return &pos, nil
}

// Update merges the patch over the stored row; absent fields are
// preserved. An owner change is validated against the users table.
func (s *PositionService) Update(ctx context.Context, id uint, patch PositionPatch) (*models.Position, error) {
	l := logging.FromContext(ctx).With("svc", "positions.update", "position_id", id)

	pos, err := s.Repo.GetPosition(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: position not found", ErrNotFound)
		}
		l.Error("update_failed", "error", err)
		return nil, err
	}

	if patch.PositionCode != nil {
		pos.PositionCode = *patch.PositionCode
	}
	if patch.PositionName != nil {
		pos.PositionName = *patch.PositionName
	}
	if patch.UserID != nil && *patch.UserID != pos.UserID {
		exists, err := s.Repo.UserExists(ctx, *patch.UserID)
		if err != nil {
			l.Error("update_failed", "error", err)
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		pos.UserID = *patch.UserID
	}

	if err := s.Repo.SavePosition(ctx, pos); err != nil {
		l.Error("update_failed", "error", err)
		return nil, err
	}

	if err := s.Events.Publish(ctx, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type": "position.updated", "position_id": id,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("update_success")
	return pos, nil
}

func (s *PositionService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "positions.delete", "position_id", id)

	if err := s.Repo.DeletePosition(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: position not found", ErrNotFound)
		}
		l.Error("delete_failed", "error", err)
		return err
	}

	if err := s.Events.Publish(ctx, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type": "position.deleted", "position_id": id,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("delete_success")
	return nil
}

// DeleteAll succeeds regardless of how many rows were removed, zero
// included.
func (s *PositionService) DeleteAll(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "positions.delete_all")

	if err := s.Repo.DeleteAllPositions(ctx); err != nil {
		l.Error("delete_all_failed", "error", err)
		return err
	}

	l.Info("delete_all_success")
	return nil
}
