package repositories

import (
	"context"
	"fiber-admin/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommodityRepository struct {
	DB *gorm.DB
}

func NewCommodityRepository(DB *gorm.DB) *CommodityRepository {
	return &CommodityRepository{DB: DB}
}

// Groups

func (r *CommodityRepository) GetGroups(ctx context.Context) ([]models.CommodityGroup, error) {
	var groups []models.CommodityGroup
	err := r.DB.WithContext(ctx).Order("grp_key asc").Find(&groups).Error
	return groups, err
}

func (r *CommodityRepository) GetGroupByID(ctx context.Context, id uint) (*models.CommodityGroup, error) {
	var group models.CommodityGroup
	if err := r.DB.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, notFound(err, "commodity group")
	}
	return &group, nil
}

func (r *CommodityRepository) GroupExists(ctx context.Context, grpKey string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.CommodityGroup{}).Where("grp_key = ?", grpKey).Count(&count).Error
	return count > 0, err
}

func (r *CommodityRepository) SaveGroup(ctx context.Context, group *models.CommodityGroup) error {
	return r.DB.WithContext(ctx).Save(group).Error
}

// DeleteGroup menghapus group beserta map dan user di bawahnya
func (r *CommodityRepository) DeleteGroup(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.CommodityGroup
		if err := tx.First(&group, id).Error; err != nil {
			return notFound(err, "commodity group")
		}
		if err := tx.Where("grp_key = ?", group.GrpKey).Delete(&models.CommodityGroupMap{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CommodityUser{}).Where("grp_key = ?", group.GrpKey).Update("grp_key", "").Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}

// Maps

func (r *CommodityRepository) GetMaps(ctx context.Context, grpKey string) ([]models.CommodityGroupMap, error) {
	var maps []models.CommodityGroupMap
	q := r.DB.WithContext(ctx)
	if grpKey != "" {
		q = q.Where("grp_key = ?", grpKey)
	}
	err := q.Order("grp_key asc").Order("cmt_name asc").Find(&maps).Error
	return maps, err
}

func (r *CommodityRepository) GetMapByID(ctx context.Context, id uint) (*models.CommodityGroupMap, error) {
	var m models.CommodityGroupMap
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "commodity map")
	}
	return &m, nil
}

func (r *CommodityRepository) SaveMap(ctx context.Context, m *models.CommodityGroupMap) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *CommodityRepository) CreateMaps(ctx context.Context, maps []models.CommodityGroupMap) error {
	if len(maps) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&maps).Error
}

func (r *CommodityRepository) DeleteMap(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.CommodityGroupMap{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "commodity map")
	}
	return nil
}

// Users

func (r *CommodityRepository) GetUsers(ctx context.Context) ([]models.CommodityUser, error) {
	var users []models.CommodityUser
	err := r.DB.WithContext(ctx).Order("en asc").Find(&users).Error
	return users, err
}

func (r *CommodityRepository) GetUserByID(ctx context.Context, id uint) (*models.CommodityUser, error) {
	var u models.CommodityUser
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "commodity user")
	}
	return &u, nil
}

func (r *CommodityRepository) SaveUser(ctx context.Context, u *models.CommodityUser) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *CommodityRepository) DeleteUser(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.CommodityUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "commodity user")
	}
	return nil
}
