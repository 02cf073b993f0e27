package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type ReminderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) (*types.Reminder, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID) ([]*types.Reminder, error)
	Upcoming(ctx context.Context, tx *gorm.DB, userID, elderID uuid.UUID, limit int) ([]*types.Reminder, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, reminderID uuid.UUID) (int64, error)
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	return &reminderRepo{db: db, log: baseLog.With("repo", "ReminderRepo")}
}

func (rr *reminderRepo) tx(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *reminderRepo) Create(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) (*types.Reminder, error) {
	if err := rr.tx(tx).WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (rr *reminderRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, elderID *uuid.UUID) ([]*types.Reminder, error) {
	query := rr.tx(tx).WithContext(ctx).Where("user_id = ?", userID)
	if elderID != nil {
		query = query.Where("elder_id = ?", *elderID)
	}
	var results []*types.Reminder
	if err := query.Order("send_time").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reminderRepo) Upcoming(ctx context.Context, tx *gorm.DB, userID, elderID uuid.UUID, limit int) ([]*types.Reminder, error) {
	var results []*types.Reminder
	if err := rr.tx(tx).WithContext(ctx).
		Where("user_id = ? AND elder_id = ?", userID, elderID).
		Order("send_time").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reminderRepo) Delete(ctx context.Context, tx *gorm.DB, userID, reminderID uuid.UUID) (int64, error) {
	res := rr.tx(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&types.Reminder{})
	return res.RowsAffected, res.Error
}
