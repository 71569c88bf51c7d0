package models

import (
	"strconv"

	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name      string `json:"name"`
	Path      string `json:"path"`
	Icon      string `json:"icon"`
	Sequence  int    `json:"sequence" gorm:"column:menu_sequence"`
	ParentID  *uint  `json:"parent_id" gorm:"index"`
	System    string `json:"system" gorm:"column:menu_system;size:50;index"`
	IsActive  bool   `json:"is_active"`
	CreatedBy int    `json:"-"`
	UpdatedBy int    `json:"-"`
	DeletedBy int    `json:"-"`
}

// MenuRecord adalah bentuk flat (punya parent) yang masuk ke BuildMenuTree.
type MenuRecord struct {
	ID       uint
	Name     string
	Path     string
	Sequence string
	ParentID *uint
	Icon     string
}

// MenuNode adalah bentuk tree yang dikirim ke frontend.
type MenuNode struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Sequence string     `json:"sequence"`
	Icon     string     `json:"icon"`
	SubMenus []MenuNode `json:"subMenus"`
}

func (m Menu) Record() MenuRecord {
	return MenuRecord{
		ID:       m.ID,
		Name:     m.Name,
		Path:     m.Path,
		Sequence: strconv.Itoa(m.Sequence),
		ParentID: m.ParentID,
		Icon:     m.Icon,
	}
}
