package repository

import (
	"github.com/dailypress/newsroom/app/models"
	"gorm.io/gorm"
)

// ActivePoolSize caps the priority-ordered active pool for the admin view.
const ActivePoolSize = 25

// NewsRepository defines the interface for news-related database operations
type NewsRepository interface {
	Create(news *models.News) error
	GetByUploader(userID string) ([]models.News, error)
	GetAllSubmissions() ([]models.News, error)
	Review(id uint64, status, reviewedBy, rejectedReason string) error
	Retract(id uint64, reason, reviewedBy string) error

	ActiveGlobal() ([]models.News, error)
	ActiveForUploader(userID string) ([]models.News, error)
	UpcomingGlobal() ([]models.News, error)
	UpcomingForUploader(userID string) ([]models.News, error)
	PublishedGlobal() ([]models.News, error)
	PublishedForUploader(userID string) ([]models.News, error)

	MarkPublished(ids []uint64) (int64, error)
}

// PriorityRepository defines the interface for uploader priority operations
type PriorityRepository interface {
	Upsert(priority *models.UserPriority) error
	GetByUserID(userID string) (*models.UserPriority, error)
	GetAll() ([]models.UserPriority, error)
	Delete(userID string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	News     NewsRepository
	Priority PriorityRepository
}

// NewRepositories creates all repository instances over one shared handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		News:     NewNewsRepository(db),
		Priority: NewPriorityRepository(db),
	}
}
