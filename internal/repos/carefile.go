package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type CareFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, file *types.CareFile) (*types.CareFile, error)
	ListScope(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID) ([]*types.CareFile, error)
	DeleteByScope(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID, filename, category string) (int64, error)
}

type careFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareFileRepo(db *gorm.DB, baseLog *logger.Logger) CareFileRepo {
	return &careFileRepo{db: db, log: baseLog.With("repo", "CareFileRepo")}
}

func (cr *careFileRepo) tx(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *careFileRepo) Create(ctx context.Context, tx *gorm.DB, file *types.CareFile) (*types.CareFile, error) {
	if err := cr.tx(tx).WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (cr *careFileRepo) scoped(query *gorm.DB, userID uuid.UUID, elderID *uuid.UUID) *gorm.DB {
	query = query.Where("user_id = ?", userID)
	if elderID != nil {
		return query.Where("elder_id = ?", *elderID)
	}
	return query.Where("elder_id IS NULL")
}

func (cr *careFileRepo) ListScope(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID) ([]*types.CareFile, error) {
	var results []*types.CareFile
	if err := cr.scoped(cr.tx(tx).WithContext(ctx), userID, elderID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *careFileRepo) DeleteByScope(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID, filename, category string) (int64, error) {
	res := cr.scoped(cr.tx(tx).WithContext(ctx), userID, elderID).
		Where("filename = ? AND category = ?", filename, category).
		Delete(&types.CareFile{})
	return res.RowsAffected, res.Error
}
