package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type CareMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, msg *types.CareMessage) (*types.CareMessage, error)
	// ListRecent returns up to limit rows newest-first; callers reverse for
	// chronological order.
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID, limit int) ([]*types.CareMessage, error)
}

type careMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareMessageRepo(db *gorm.DB, baseLog *logger.Logger) CareMessageRepo {
	return &careMessageRepo{db: db, log: baseLog.With("repo", "CareMessageRepo")}
}

func (mr *careMessageRepo) tx(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return mr.db
}

func (mr *careMessageRepo) Create(ctx context.Context, tx *gorm.DB, msg *types.CareMessage) (*types.CareMessage, error) {
	if err := mr.tx(tx).WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (mr *careMessageRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID, limit int) ([]*types.CareMessage, error) {
	query := mr.tx(tx).WithContext(ctx).Where("user_id = ?", userID)
	if elderID != nil {
		query = query.Where("elder_id = ?", *elderID)
	} else {
		query = query.Where("elder_id IS NULL")
	}
	var results []*types.CareMessage
	if err := query.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
