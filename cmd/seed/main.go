package main

import (
	"time"

	"cafepos/internal/config"
	"cafepos/internal/domain/model"
	"cafepos/internal/infra/db"
	"cafepos/internal/logger"
	auth "cafepos/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// デモ用データ。何度流しても増えない。
type seedUser struct {
	username    string
	password    string
	displayName string
	role        model.Role
}

type seedItem struct {
	category string
	name     string
	price    int64
}

var users = []seedUser{
	{"admin", "admin123", "Admin", model.RoleAdmin},
	{"kasir", "kasir123", "Kasir", model.RoleCashier},
}

var categories = []struct {
	name string
	icon string
}{
	{"Kopi", "Coffee"},
	{"Teh", "CupSoda"},
	{"Makanan", "Utensils"},
}

var items = []seedItem{
	{"Kopi", "Espresso", 25000},
	{"Kopi", "Cappuccino", 30000},
	{"Teh", "Teh Tarik", 20000},
	{"Makanan", "Roti Bakar", 15000},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.Connect(cfg.DSN(), false)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	now := time.Now()

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			hash, err := hasher.Hash(u.password)
			if err != nil {
				return err
			}
			row := model.User{
				ID:           uuid.NewString(),
				Username:     u.username,
				PasswordHash: hash,
				DisplayName:  u.displayName,
				Role:         u.role,
				IsActive:     true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Where("username = ?", u.username).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}

		categoryIDs := map[string]string{}
		for _, c := range categories {
			row := model.Category{ID: uuid.NewString(), Name: c.name, Icon: c.icon, IsActive: true}
			if err := tx.Where("name = ?", c.name).FirstOrCreate(&row).Error; err != nil {
				return err
			}
			categoryIDs[c.name] = row.ID
		}

		for _, it := range items {
			row := model.MenuItem{
				ID:          uuid.NewString(),
				CategoryID:  categoryIDs[it.category],
				Name:        it.name,
				Price:       decimal.NewFromInt(it.price),
				IsAvailable: true,
			}
			if err := tx.Where("name = ?", it.name).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	log.Info("seed done",
		zap.Int("users", len(users)),
		zap.Int("categories", len(categories)),
		zap.Int("menu_items", len(items)),
	)
}
