package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type YoungerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, younger *types.Younger) (*types.Younger, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Younger, error)
	GetOwned(ctx context.Context, tx *gorm.DB, userID, youngerID uuid.UUID) (*types.Younger, error)
	Update(ctx context.Context, tx *gorm.DB, younger *types.Younger) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, youngerID uuid.UUID) (int64, error)
}

type youngerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewYoungerRepo(db *gorm.DB, baseLog *logger.Logger) YoungerRepo {
	return &youngerRepo{db: db, log: baseLog.With("repo", "YoungerRepo")}
}

func (yr *youngerRepo) tx(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return yr.db
}

func (yr *youngerRepo) Create(ctx context.Context, tx *gorm.DB, younger *types.Younger) (*types.Younger, error) {
	if err := yr.tx(tx).WithContext(ctx).Create(younger).Error; err != nil {
		return nil, err
	}
	return younger, nil
}

func (yr *youngerRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Younger, error) {
	var results []*types.Younger
	if err := yr.tx(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (yr *youngerRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, youngerID uuid.UUID) (*types.Younger, error) {
	var result types.Younger
	err := yr.tx(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", youngerID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (yr *youngerRepo) Update(ctx context.Context, tx *gorm.DB, younger *types.Younger) (int64, error) {
	res := yr.tx(tx).WithContext(ctx).
		Model(&types.Younger{}).
		Where("id = ? AND user_id = ?", younger.ID, younger.UserID).
		Updates(map[string]interface{}{
			"relationship": younger.Relationship,
			"name":         younger.Name,
			"age":          younger.Age,
			"email":        younger.Email,
			"phone":        younger.Phone,
			"address":      younger.Address,
			"notes":        younger.Notes,
			"last_updated": younger.LastUpdated,
		})
	return res.RowsAffected, res.Error
}

func (yr *youngerRepo) Delete(ctx context.Context, tx *gorm.DB, userID, youngerID uuid.UUID) (int64, error) {
	res := yr.tx(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", youngerID, userID).
		Delete(&types.Younger{})
	return res.RowsAffected, res.Error
}
