package repositories

import (
	"context"
	"fiber-admin/models"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(DB *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: DB}
}

// GetActive ambil menu aktif untuk satu system, urutan tidak dijamin
func (r *MenuRepository) GetActive(ctx context.Context, system string) ([]models.Menu, error) {
	var menus []models.Menu
	q := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if system != "" {
		q = q.Where("menu_system = ?", system)
	}
	err := q.Order("id asc").Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) GetAll(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.DB.WithContext(ctx).Order("id asc").Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) GetByID(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.DB.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, notFound(err, "menu")
	}
	return &menu, nil
}

func (r *MenuRepository) Create(ctx context.Context, menu *models.Menu) error {
	return r.DB.WithContext(ctx).Create(menu).Error
}

func (r *MenuRepository) Update(ctx context.Context, menu *models.Menu) error {
	return r.DB.WithContext(ctx).Save(menu).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Menu{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "menu")
	}
	return nil
}

// ReplaceSystem mengganti seluruh menu satu system dalam satu transaksi.
// ID dari payload dipertahankan supaya parent reference tetap valid.
func (r *MenuRepository) ReplaceSystem(ctx context.Context, system string, menus []models.Menu) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("menu_system = ?", system).Delete(&models.Menu{}).Error; err != nil {
			return err
		}
		if len(menus) == 0 {
			return nil
		}
		if err := tx.Create(&menus).Error; err != nil {
			return err
		}
		return SyncSequence(tx, "menus")
	})
}
