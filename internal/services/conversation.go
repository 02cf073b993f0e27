package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationLog records question/answer turns per scope. Append returns an
// error for visibility, but callers on the ask path discard it: a failed
// append must never block the answer.
type ConversationLog interface {
	Append(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID, role, content string) error
	// List returns up to limit turns, oldest first.
	List(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID, limit int) ([]*types.CareMessage, error)
}

type conversationLog struct {
	db      *gorm.DB
	log     *logger.Logger
	msgRepo repos.CareMessageRepo
}

func NewConversationLog(db *gorm.DB, log *logger.Logger, msgRepo repos.CareMessageRepo) ConversationLog {
	return &conversationLog{db: db, log: log.With("service", "ConversationLog"), msgRepo: msgRepo}
}

func (cl *conversationLog) Append(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID, role, content string) error {
	_, err := cl.msgRepo.Create(ctx, nil, &types.CareMessage{
		ID:        uuid.New(),
		UserID:    userID,
		ElderID:   elderID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		cl.log.Warn("Could not persist conversation turn", "role", role, "error", err)
	}
	return err
}

func (cl *conversationLog) List(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID, limit int) ([]*types.CareMessage, error) {
	msgs, err := cl.msgRepo.ListRecent(ctx, nil, userID, elderID, limit)
	if err != nil {
		return nil, err
	}
	// Store order is newest-first for the limit; reverse to chronological.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
