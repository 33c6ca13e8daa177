package models

// UserPriority ranks an uploader inside the active pool ordering. Lower
// priority values rank higher. Approved items from uploaders without a row
// here never enter the priority-ordered admin queries (inner join).
type UserPriority struct {
	UserID   string `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	Priority int    `gorm:"index" json:"priority"`
}

// TableName specifies the table name for the UserPriority model
func (UserPriority) TableName() string {
	return "user_priority"
}
