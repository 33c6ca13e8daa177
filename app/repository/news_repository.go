package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/dailypress/newsroom/app/models"
	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

// Selection queries. The pool partition lives in these SQL shapes: the active
// pool is the top slice of the priority-ordered candidate set, upcoming is
// everything approved and unpublished that the active slice excluded, and
// published is flag-driven. The admin queries inner join user_priority, so
// uploaders without a priority row never appear in them.
const (
	activeGlobalSQL = `
		SELECT n.* FROM news n
		JOIN user_priority up ON n.uploaded_by = up.user_id
		WHERE n.status = 'approved'
		AND n.date <= CURDATE()
		AND n.is_published = FALSE
		ORDER BY up.priority ASC, n.date ASC, n.priority_order ASC, n.submitted_at DESC
		LIMIT 25`

	upcomingGlobalSQL = `
		SELECT n.* FROM news n
		LEFT JOIN (
			SELECT n2.id FROM news n2
			JOIN user_priority up ON n2.uploaded_by = up.user_id
			WHERE n2.status = 'approved'
			AND n2.date <= CURDATE()
			AND n2.is_published = FALSE
			ORDER BY up.priority ASC, n2.date ASC, n2.priority_order ASC, n2.submitted_at DESC
			LIMIT 25
		) AS active ON n.id = active.id
		WHERE n.status = 'approved'
		AND n.is_published = FALSE
		AND active.id IS NULL
		ORDER BY n.date DESC`

	publishedGlobalSQL = `
		SELECT * FROM news
		WHERE status = 'approved'
		AND is_published = TRUE
		ORDER BY published_at DESC`

	activeUploaderSQL = `
		SELECT n.* FROM news n
		JOIN user_priority up ON n.uploaded_by = up.user_id
		WHERE n.status = 'approved'
		AND n.date <= CURDATE()
		AND n.is_published = FALSE
		AND n.uploaded_by = ?
		ORDER BY up.priority ASC, n.date ASC, n.priority_order ASC, n.submitted_at DESC`

	upcomingUploaderSQL = `
		SELECT * FROM news
		WHERE status = 'approved'
		AND is_published = FALSE
		AND uploaded_by = ?
		AND date > CURDATE()
		ORDER BY date ASC`

	publishedUploaderSQL = `
		SELECT * FROM news
		WHERE status = 'approved'
		AND is_published = TRUE
		AND uploaded_by = ?
		ORDER BY published_at DESC`
)

// newsRepository implements the NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository instance
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create inserts a new news item
func (r *newsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

// GetByUploader lists an uploader's submissions with their review metadata,
// newest first. The image blob is left out of the list view.
func (r *newsRepository) GetByUploader(userID string) ([]models.News, error) {
	var news []models.News
	err := r.db.
		Select("id", "date", "title", "content", "category", "status",
			"uploaded_by", "submitted_at", "reviewed_at", "reviewed_by", "rejected_reason").
		Where("uploaded_by = ?", userID).
		Order("submitted_at DESC").Find(&news).Error
	return news, err
}

// GetAllSubmissions lists every submission for the review queue, newest first.
func (r *newsRepository) GetAllSubmissions() ([]models.News, error) {
	var news []models.News
	err := r.db.
		Select("id", "date", "title", "content", "category", "status",
			"uploaded_by", "submitted_at", "reviewed_at", "reviewed_by", "rejected_reason").
		Order("submitted_at DESC").Find(&news).Error
	return news, err
}

// Review applies the one-shot pending -> approved/declined transition. Items
// that already left the pending state are not matched, so a review never
// reverts an earlier decision.
func (r *newsRepository) Review(id uint64, status, reviewedBy, rejectedReason string) error {
	now := time.Now()
	res := r.db.Model(&models.News{}).
		Where("id = ? AND status = ?", id, models.NewsStatusPending).
		Updates(map[string]interface{}{
			"status":          status,
			"reviewed_at":     now,
			"reviewed_by":     reviewedBy,
			"rejected_reason": rejectedReason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("pending news", id)
	}
	return nil
}

// Retract marks an approved or pending item declined with a reason. The row
// stays in place; nothing is ever physically deleted.
func (r *newsRepository) Retract(id uint64, reason, reviewedBy string) error {
	now := time.Now()
	res := r.db.Model(&models.News{}).
		Where("id = ? AND status IN ?", id, []string{models.NewsStatusPending, models.NewsStatusApproved}).
		Updates(map[string]interface{}{
			"status":          models.NewsStatusDeclined,
			"rejected_reason": reason,
			"reviewed_by":     reviewedBy,
			"reviewed_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("news", id)
	}
	return nil
}

// ActiveGlobal returns the admin active pool: the top 25 approved, unpublished,
// due items in priority order.
func (r *newsRepository) ActiveGlobal() ([]models.News, error) {
	var news []models.News
	err := r.db.Raw(activeGlobalSQL).Scan(&news).Error
	return news, err
}

// ActiveForUploader returns the uploader-scoped active pool (no limit).
func (r *newsRepository) ActiveForUploader(userID string) ([]models.News, error) {
	var news []models.News
	err := r.db.Raw(activeUploaderSQL, userID).Scan(&news).Error
	return news, err
}

// UpcomingGlobal returns every approved, unpublished item the active slice
// excluded, future-dated or not, newest date first.
func (r *newsRepository) UpcomingGlobal() ([]models.News, error) {
	var news []models.News
	err := r.db.Raw(upcomingGlobalSQL).Scan(&news).Error
	return news, err
}

// UpcomingForUploader returns the uploader's future-dated approved items.
func (r *newsRepository) UpcomingForUploader(userID string) ([]models.News, error) {
	var news []models.News
	err := r.db.Raw(upcomingUploaderSQL, userID).Scan(&news).Error
	return news, err
}

// PublishedGlobal returns every published item, latest first.
func (r *newsRepository) PublishedGlobal() ([]models.News, error) {
	var news []models.News
	err := r.db.Raw(publishedGlobalSQL).Scan(&news).Error
	return news, err
}

// PublishedForUploader returns the uploader's published items, latest first.
func (r *newsRepository) PublishedForUploader(userID string) ([]models.News, error) {
	var news []models.News
	err := r.db.Raw(publishedUploaderSQL, userID).Scan(&news).Error
	return news, err
}

// MarkPublished flips is_published for the given ids in one batch write.
// Already-published ids are filtered out by the WHERE clause, so a repeated
// call is a no-op and the affected count reflects only fresh publications.
// This is a single UPDATE, not a transaction: a store error can leave part of
// the set published, which callers accept (at-least-once).
func (r *newsRepository) MarkPublished(ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := time.Now()
	res := r.db.Model(&models.News{}).
		Where("id IN ? AND is_published = ?", ids, false).
		Updates(map[string]interface{}{
			"is_published": true,
			"published_at": now,
		})
	return res.RowsAffected, res.Error
}
