package repository

import (
	"context"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 名前順。論理削除済みはgormが除外する。
func (r *CategoryGormRepository) List(ctx context.Context, onlyActive bool) ([]model.Category, error) {
	var cats []model.Category

	tx := r.db.WithContext(ctx).Model(&model.Category{})
	if onlyActive {
		tx = tx.Where("is_active = ?", true)
	}

	if err := tx.Order("name asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return model.Category{}, translateErr(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	if err != nil {
		return model.Category{}, translateErr(err)
	}
	return c, nil
}

// カテゴリの作成
func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, translateErr(err)
	}
	return c, nil
}

// カテゴリの更新
func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"icon":        c.Icon,
		"is_active":   c.IsActive,
	})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリ削除（論理削除）
func (r *CategoryGormRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
