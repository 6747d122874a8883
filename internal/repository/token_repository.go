package repository

import (
	"github.com/yukikurage/scrum-board-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create stores a new token
func (r *GormTokenRepository) Create(token *models.Token) error {
	return r.db.Omit(clause.Associations).Create(token).Error
}

// FindByKey finds a token by key with its user
func (r *GormTokenRepository) FindByKey(key string) (*models.Token, error) {
	var token models.Token
	if err := r.db.Preload("User").Where(&models.Token{Key: key}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByUserID finds the token of a user
func (r *GormTokenRepository) FindByUserID(userID uint64) (*models.Token, error) {
	var token models.Token
	if err := r.db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByUserID removes the token of a user
func (r *GormTokenRepository) DeleteByUserID(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Token{}).Error
}
