package models

import (
	"time"
)

// News statuses. A row is created as pending (or approved for the admin
// uploader) and reviewed exactly once; a retraction writes declined with a
// reason instead of deleting the row.
const (
	NewsStatusPending  = "pending"
	NewsStatusApproved = "approved"
	NewsStatusDeclined = "declined"
)

// AdminUser is the privileged uploader identity. Submissions from it are
// auto-approved and it sees the global pools instead of its own uploads.
const AdminUser = "admin"

// News represents a submitted news item in the system
type News struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	Date           time.Time  `gorm:"type:date;index" json:"date"`
	Title          string     `gorm:"type:varchar(255)" json:"title" validate:"required,min=1,max=255"`
	Content        string     `gorm:"type:text" json:"content"`
	Image          []byte     `gorm:"type:longblob" json:"-"`
	Category       string     `gorm:"type:varchar(64);default:other" json:"category"`
	UploadedBy     string     `gorm:"type:varchar(64);index" json:"uploaded_by"`
	Status         string     `gorm:"type:varchar(16);default:pending;index" json:"status"`
	SubmittedAt    time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	ReviewedBy     string     `gorm:"type:varchar(64)" json:"reviewed_by"`
	RejectedReason string     `gorm:"type:text" json:"rejected_reason"`
	IsPublished    bool       `gorm:"type:tinyint(1);default:0;index" json:"is_published"`
	PublishedAt    *time.Time `json:"published_at"`
	PriorityOrder  int        `gorm:"default:0" json:"priority_order"`
}

// TableName specifies the table name for the News model
func (News) TableName() string {
	return "news"
}

// IsReviewed reports whether the item already left the pending state.
func (n *News) IsReviewed() bool {
	return n.Status != NewsStatusPending
}
