package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dailypress/newsroom/app/models"
	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

// priorityRepository implements the PriorityRepository interface
type priorityRepository struct {
	db *gorm.DB
}

// NewPriorityRepository creates a new priority repository instance
func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &priorityRepository{db: db}
}

// Upsert creates or replaces the priority row for an uploader
func (r *priorityRepository) Upsert(priority *models.UserPriority) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority"}),
	}).Create(priority).Error
}

// GetByUserID retrieves the priority row for an uploader
func (r *priorityRepository) GetByUserID(userID string) (*models.UserPriority, error) {
	var priority models.UserPriority
	err := r.db.Where("user_id = ?", userID).First(&priority).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user priority", userID)
	}
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

// GetAll lists all uploader priorities, highest rank first
func (r *priorityRepository) GetAll() ([]models.UserPriority, error) {
	var priorities []models.UserPriority
	err := r.db.Order("priority ASC").Find(&priorities).Error
	return priorities, err
}

// Delete removes the priority row for an uploader
func (r *priorityRepository) Delete(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserPriority{}).Error
}
