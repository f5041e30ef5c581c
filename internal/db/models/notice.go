package models

import "time"

// NoticeAudience selects which user population a notice targets.
type NoticeAudience string

const (
	// NoticeAudienceAll broadcasts to every active user.
	NoticeAudienceAll NoticeAudience = "all"
	// NoticeAudienceDonors targets donor accounts.
	NoticeAudienceDonors NoticeAudience = "donors"
	// NoticeAudienceNGOs targets NGO accounts.
	NoticeAudienceNGOs NoticeAudience = "ngos"
	// NoticeAudienceCompanies targets company accounts.
	NoticeAudienceCompanies NoticeAudience = "companies"
)

// Notice represents a broadcast or targeted message to a user population.
type Notice struct {
	// ID is the unique identifier for the notice.
	ID uint64 `gorm:"primaryKey"`
	// Title is the notice headline.
	Title string `gorm:"size:255;not null"`
	// Body is the notice content.
	Body string `gorm:"type:text;not null"`
	// Audience selects the targeted user population.
	Audience NoticeAudience `gorm:"type:varchar(20);not null;default:'all'"`
	// CreatedBy references the administrator who published the notice.
	CreatedBy uint64 `gorm:"not null"`
	// CreatedAt is the timestamp when the notice was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the notice was last updated (managed by GORM).
	UpdatedAt time.Time
}

// NoticeRead tracks that a user has read a notice.
// The composite primary key deduplicates repeated mark-read calls.
type NoticeRead struct {
	// NoticeID is the ID of the read notice.
	NoticeID uint64 `gorm:"primaryKey;column:notice_id"`
	// UserID is the ID of the reading user.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// ReadAt is when the notice was first marked read.
	ReadAt time.Time
}

// TableName specifies the database table name for the NoticeRead model.
func (NoticeRead) TableName() string {
	return "notice_reads"
}
