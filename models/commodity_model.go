package models

import "gorm.io/gorm"

type CommodityGroup struct {
	gorm.Model
	GrpKey    string `json:"grp_key" gorm:"uniqueIndex;size:50"`
	GrpName   string `json:"grp_name"`
	IsActive  bool   `json:"is_active"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}

type CommodityGroupMap struct {
	gorm.Model
	GrpKey    string `json:"grp_key" gorm:"index;size:50"`
	CmtName   string `json:"cmt_name"`
	IsActive  bool   `json:"is_active"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}

// CommodityUser adalah PIC per commodity group (EN = employee number).
type CommodityUser struct {
	gorm.Model
	EN        string `json:"en" gorm:"uniqueIndex;size:50"`
	GrpKey    string `json:"grp_key" gorm:"index;size:50"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}
