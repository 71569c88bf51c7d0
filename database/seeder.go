package database

import (
	"errors"
	"fiber-admin/config"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/services"
	"fmt"
	"log"
	"time"

	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) error {
	if err := SeedUsers(db); err != nil {
		return err
	}
	if err := SeedMenus(db); err != nil {
		return err
	}
	if err := SeedApprovalRequests(db); err != nil {
		return err
	}
	if err := SeedWorkflows(db); err != nil {
		return err
	}
	return SeedCommodities(db)
}

func SeedUsers(db *gorm.DB) error {
	users := []models.User{
		{
			Model:     gorm.Model{ID: 1},
			Username:  "alice",
			FirstName: "Alice",
			Email:     "alice@example.com",
			Role:      models.RoleEmployee,
			BuName:    "Engineering",
			BuCode:    "ENG001",
			Plant:     "Plant A",
		},
		{
			Model:     gorm.Model{ID: 2},
			Username:  "bob",
			FirstName: "Bob",
			Email:     "bob@example.com",
			Role:      models.RoleManager,
			BuName:    "Engineering",
			BuCode:    "ENG001",
			Plant:     "Plant A",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("username = ?", user.Username).First(&existing).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}

		hashed, err := services.HashPassword("password")
		if err != nil {
			return err
		}
		user.Password = hashed
		user.IsActive = true
		user.ThemeMode = "light"
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
		log.Println("Insert user:", user.Username)
	}
	return repositories.SyncSequence(db, "users")
}

func SeedMenus(db *gorm.DB) error {
	menus := []struct {
		models.Menu
		Parent string
	}{
		{Menu: models.Menu{Name: "Dashboard", Path: "/dashboard", Icon: "dashboard", Sequence: 1}},
		{Menu: models.Menu{Name: "Requests", Path: "/requests", Icon: "assignment", Sequence: 2}},
		{Menu: models.Menu{Name: "Master Data", Path: "#", Icon: "storage", Sequence: 3}},
		{Menu: models.Menu{Name: "Users", Path: "/master/users", Icon: "people", Sequence: 1}, Parent: "Master Data"},
		{Menu: models.Menu{Name: "Commodities", Path: "/master/commodities", Icon: "category", Sequence: 2}, Parent: "Master Data"},
		{Menu: models.Menu{Name: "Workflows", Path: "/workflows", Icon: "account_tree", Sequence: 4}},
	}

	for _, item := range menus {
		menu := item.Menu
		var existing models.Menu
		err := db.Where("name = ? AND path = ?", menu.Name, menu.Path).First(&existing).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		// parent dicari setelah root dibuat di iterasi sebelumnya
		if item.Parent != "" {
			menu.ParentID = getMenuIDByName(db, item.Parent)
		}
		menu.System = config.MenuSystem
		menu.IsActive = true
		if err := db.Create(&menu).Error; err != nil {
			log.Println("Gagal insert menu:", menu.Name, err)
			return err
		}
		log.Println("Insert menu:", menu.Name)
	}
	return nil
}

func SeedApprovalRequests(db *gorm.DB) error {
	decided := time.Now()
	requests := []models.ApprovalRequest{
		{
			ID:            101,
			SubmittedBy:   "Alice (Employee)",
			SubmittedByID: 1,
			Details:       "Request for 2 days leave for a personal trip.",
			Status:        models.StatusPending,
			ApproverID:    2,
		},
		{
			ID:            102,
			SubmittedBy:   "Alice (Employee)",
			SubmittedByID: 1,
			Details:       "Need to take a half-day off for a dentist appointment.",
			Status:        models.StatusApproved,
			ApproverID:    2,
			DecidedAt:     &decided,
		},
	}

	for _, r := range requests {
		var count int64
		if err := db.Model(&models.ApprovalRequest{}).Where("id = ?", r.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("seed approval request %d: %w", r.ID, err)
		}
	}
	return nil
}

func SeedCommodities(db *gorm.DB) error {
	groups := []models.CommodityGroup{
		{GrpKey: "G001", GrpName: "Electronics"},
		{GrpKey: "G002", GrpName: "Apparel"},
	}
	maps := []models.CommodityGroupMap{
		{GrpKey: "G001", CmtName: "Laptops"},
		{GrpKey: "G001", CmtName: "Smartphones"},
		{GrpKey: "G002", CmtName: "T-Shirts"},
	}
	users := []models.CommodityUser{
		{EN: "U001", GrpKey: "G001", Name: "Alice Johnson", Email: "alice@example.com"},
		{EN: "U002", GrpKey: "G002", Name: "Bob Smith", Email: "bob@example.com"},
	}

	for _, g := range groups {
		g.IsActive = true
		if err := db.Where(models.CommodityGroup{GrpKey: g.GrpKey}).FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}
	for _, m := range maps {
		m.IsActive = true
		if err := db.Where(models.CommodityGroupMap{GrpKey: m.GrpKey, CmtName: m.CmtName}).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	for _, u := range users {
		u.IsActive = true
		if err := db.Where(models.CommodityUser{EN: u.EN}).FirstOrCreate(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

var notificationTemplates = []struct {
	Type models.NotificationType
	Text string
	Link string
}{
	{models.NotifyApprove, "Your request has been approved", "/requests"},
	{models.NotifyReject, "Your request has been rejected", "/requests"},
	{models.NotifyInfo, "New policy updates are available", "/policies"},
	{models.NotifyTask, "You have a new task assigned", "/tasks"},
	{models.NotifyInfo, "System maintenance scheduled", "/maintenance"},
	{models.NotifyTask, "Please review the project updates", "/projects"},
	{models.NotifyApprove, "Expense report approved", "/expenses"},
	{models.NotifyTask, "Review pending approval", "/approvals"},
	{models.NotifyInfo, "Company announcement posted", "/announcements"},
	{models.NotifyReject, "Time-off request denied", "/timeoff"},
}

func SeedWorkflows(db *gorm.DB) error {
	workflows := []models.Workflow{
		{Name: "Leave Request", Active: true},
		{Name: "Purchase Request", Active: true},
		{Name: "Commodity Onboarding", Active: false},
	}
	for _, w := range workflows {
		var existing models.Workflow
		err := db.Where("name = ?", w.Name).First(&existing).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err := db.Create(&w).Error; err != nil {
			return fmt.Errorf("seed workflow %s: %w", w.Name, err)
		}
	}
	return nil
}

// SeedDemoNotifications membuat data dummy untuk demo dropdown notifikasi.
func SeedDemoNotifications(db *gorm.DB, perUser int, seed uint64) error {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return err
	}

	r := rand.New(rand.NewSource(seed))
	now := time.Now()
	items := make([]models.Notification, 0, len(users)*perUser)
	for _, u := range users {
		for i := 1; i <= perUser; i++ {
			tpl := notificationTemplates[r.Intn(len(notificationTemplates))]
			items = append(items, models.Notification{
				UserID:    u.ID,
				Type:      tpl.Type,
				Text:      fmt.Sprintf("%s #%d", tpl.Text, i),
				Link:      fmt.Sprintf("%s/%d", tpl.Link, i),
				Unread:    i%3 != 0,
				CreatedAt: now.Add(-time.Duration(i) * time.Minute),
			})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return db.CreateInBatches(&items, 100).Error
}

func getMenuIDByName(db *gorm.DB, name string) *uint {
	var parent models.Menu
	err := db.Where("name = ?", name).First(&parent).Error
	if err == nil {
		id := parent.ID
		return &id
	}
	return nil
}
