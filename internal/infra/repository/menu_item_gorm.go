package repository

import (
	"context"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

// カテゴリ付きで返す。カテゴリ指定なしならカテゴリ名→商品名の順。
func (r *MenuItemGormRepository) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, error) {
	var items []model.MenuItem

	tx := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Select("menu_items.*").
		Joins("JOIN categories ON categories.id = menu_items.category_id AND categories.deleted_at IS NULL").
		Preload("Category")

	// レジで選べるのは販売中かつ有効なカテゴリのものだけ
	if q.OnlyAvailable {
		tx = tx.Where("menu_items.is_available = ?", true).
			Where("categories.is_active = ?", true)
	}

	if q.CategoryID != "" {
		tx = tx.Where("menu_items.category_id = ?", q.CategoryID).
			Order("menu_items.name asc")
	} else {
		tx = tx.Order("categories.name asc").Order("menu_items.name asc")
	}

	if err := tx.Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

// IDでメニューを取得
func (r *MenuItemGormRepository) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&m).Error
	if err != nil {
		return model.MenuItem{}, translateErr(err)
	}
	return m, nil
}

func (r *MenuItemGormRepository) FindByName(ctx context.Context, name string) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&m).Error
	if err != nil {
		return model.MenuItem{}, translateErr(err)
	}
	return m, nil
}

// メニューの作成
func (r *MenuItemGormRepository) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	m.Category = nil
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.MenuItem{}, translateErr(err)
	}
	return m, nil
}

// メニューの更新
func (r *MenuItemGormRepository) Update(ctx context.Context, m model.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"category_id":  m.CategoryID,
		"name":         m.Name,
		"description":  m.Description,
		"price":        m.Price,
		"image_url":    m.ImageURL,
		"is_available": m.IsAvailable,
	})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// メニュー削除（論理削除）
func (r *MenuItemGormRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuItemGormRepository) SoftDeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&model.MenuItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
