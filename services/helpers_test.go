package services

import (
	"context"
	"fiber-admin/migration"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

// seedPeople membuat Alice (1, Employee), Bob (2, Manager) dan Eve (5, Employee).
func seedPeople(t *testing.T, db *gorm.DB) {
	t.Helper()
	hashed, err := HashPassword("password")
	require.NoError(t, err)

	people := []models.User{
		{Model: gorm.Model{ID: 1}, Username: "alice", FirstName: "Alice", Email: "alice@example.com", Role: models.RoleEmployee},
		{Model: gorm.Model{ID: 2}, Username: "bob", FirstName: "Bob", Email: "bob@example.com", Role: models.RoleManager},
		{Model: gorm.Model{ID: 5}, Username: "eve", FirstName: "Eve", Email: "eve@example.com", Role: models.RoleEmployee},
	}
	repo := repositories.NewUserRepository(db)
	for i := range people {
		people[i].Password = hashed
		people[i].IsActive = true
		people[i].ThemeMode = "light"
		require.NoError(t, repo.Create(context.Background(), &people[i]))
	}
}

type sentMail struct {
	To      []string
	Subject string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(to []string, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject})
	return nil
}
