package repository

import (
	"context"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"gorm.io/gorm"
)

// 一覧の既定件数と上限
const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

// DI
func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// カタログ変更と同じTx内で呼ばれる
func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return translateErr(r.db.WithContext(ctx).Create(&entry).Error)
}

// auditFilter はnilでない条件だけWHEREに足す。
func auditFilter(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.ActorUserID != nil {
			tx = tx.Where("actor_user_id = ?", *f.ActorUserID)
		}
		if f.Action != nil {
			tx = tx.Where("action = ?", *f.Action)
		}
		if f.ResourceType != nil {
			tx = tx.Where("resource_type = ?", *f.ResourceType)
		}
		if f.ResourceID != nil {
			tx = tx.Where("resource_id = ?", *f.ResourceID)
		}
		if f.CreatedFrom != nil {
			tx = tx.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			tx = tx.Where("created_at < ?", *f.CreatedTo)
		}
		return tx
	}
}

// 新しい順。同時刻はid順で安定させる。
func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	offset := max(f.Offset, 0)

	var logs []model.AuditLog
	err := r.db.WithContext(ctx).Model(&model.AuditLog{}).
		Scopes(auditFilter(f)).
		Order("created_at desc").Order("id desc").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	if err != nil {
		return []model.AuditLog{}, err
	}
	return logs, nil
}
