package repositories

import (
	"context"
	"errors"
	"fiber-admin/models"
	"fiber-admin/utils/xerrors"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerrors.NotFound(entity)
	}
	return err
}

// Create user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// Get user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// GetByLogin cari user berdasarkan username atau email
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// Get all users
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

// Update user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

// Delete user, deleted_by diisi dulu sebelum soft delete
func (r *UserRepository) Delete(ctx context.Context, id uint, actor int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return notFound(err, "user")
		}
		if err := tx.Model(&user).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (r *UserRepository) CreateSession(ctx context.Context, session *models.UserSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *UserRepository) GetActiveSession(ctx context.Context, sessionID string, now time.Time) (*models.UserSession, error) {
	var session models.UserSession
	err := r.DB.WithContext(ctx).
		Where("session_id = ? AND is_active = ? AND expires_at > ?", sessionID, true, now).
		First(&session).Error
	if err != nil {
		return nil, notFound(err, "session")
	}
	return &session, nil
}

func (r *UserRepository) TouchSession(ctx context.Context, sessionID string, now time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.UserSession{}).
		Where("session_id = ?", sessionID).
		Update("last_activity_at", now).Error
}

func (r *UserRepository) DeactivateSession(ctx context.Context, sessionID string, now time.Time) error {
	res := r.DB.WithContext(ctx).Model(&models.UserSession{}).
		Where("session_id = ? AND is_active = ?", sessionID, true).
		Updates(map[string]interface{}{"is_active": false, "last_activity_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return xerrors.ErrInvalidSession
	}
	return nil
}
