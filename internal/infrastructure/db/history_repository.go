package db

import (
	"context"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type historyRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepository(db *gorm.DB, log *logger.Logger) ports.HistoryRepository {
	return &historyRepository{db: db, log: log}
}

func (r *historyRepository) GetByTask(ctx context.Context, taskID string) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("changed_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		r.log.Errorw("history_repo_get_by_task_failed", "task_id", taskID, "error", err)
		return nil, err
	}
	return entries, nil
}
