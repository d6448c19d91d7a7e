package db

import (
	"cafepos/internal/domain/model"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
}

// Migrate はテーブルを作る/追従させる。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.MenuItem{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.TransactionSequence{},
		&model.AuditLog{},
	)
}

// NewSqlx は同じコネクションプールを集計クエリ用にsqlxで包む。
func NewSqlx(gormDB *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, "pgx"), nil
}
