package migration

import (
	"fiber-admin/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Menu{},
		&models.ApprovalRequest{},
		&models.CommodityGroup{},
		&models.CommodityGroupMap{},
		&models.CommodityUser{},
		&models.Notification{},
		&models.Workflow{},
	)
}
