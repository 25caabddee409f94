package repo

import (
	"context"

	"github.com/staffhub/staffhub/internal/models"
	"gorm.io/gorm"
)

const positionJoinSelect = "positions.position_id, positions.position_code, positions.position_name, positions.user_id, users.username AS user_name"

func (r *GormRepo) ListPositions(ctx context.Context) ([]models.PositionRow, error) {
	rows := make([]models.PositionRow, 0)
	if err := r.DB.WithContext(ctx).
		Table("positions").
		Select(positionJoinSelect).
		Joins("JOIN users ON users.id = positions.user_id").
		Order("positions.position_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetPositionRow(ctx context.Context, id uint) (*models.PositionRow, error) {
	var row models.PositionRow
	if err := r.DB.WithContext(ctx).
		Table("positions").
		Select(positionJoinSelect).
		Joins("JOIN users ON users.id = positions.user_id").
		Where("positions.position_id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) GetPosition(ctx context.Context, id uint) (*models.Position, error) {
	var pos models.Position
	if err := r.DB.WithContext(ctx).First(&pos, id).Error; err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *GormRepo) CountPositionsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Position{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepo) CreatePosition(ctx context.Context, pos *models.Position) error {
	return r.DB.WithContext(ctx).Create(pos).Error
}

func (r *GormRepo) SavePosition(ctx context.Context, pos *models.Position) error {
	return r.DB.WithContext(ctx).Save(pos).Error
}

func (r *GormRepo) DeletePosition(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Position{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllPositions succeeds even when the table is already empty.
func (r *GormRepo) DeleteAllPositions(ctx context.Context) error {
	return r.DB.WithContext(ctx).Where("1 = 1").Delete(&models.Position{}).Error
}
