package repository

import (
	"context"

	"gorm.io/gorm"
)

// 行が無ければ1で作り、あれば+1。同じ日の採番はこの行ロックで直列になる。
const nextSequenceSQL = `
INSERT INTO transaction_sequences (day, last_value) VALUES (?, 1)
ON CONFLICT (day) DO UPDATE SET last_value = transaction_sequences.last_value + 1
RETURNING last_value`

type SequenceGormRepository struct {
	db *gorm.DB
}

// DI
func NewSequenceGormRepository(db *gorm.DB) *SequenceGormRepository {
	return &SequenceGormRepository{db: db}
}

func (r *SequenceGormRepository) Next(ctx context.Context, day string) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).Raw(nextSequenceSQL, day).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
