package models

import "time"

// friendlyDateLayout renders a timestamp as weekday, month, unpadded day,
// year and 12-hour time, e.g. "Sat Feb 1 2025, 3:05 PM".
const friendlyDateLayout = "Mon Jan 2 2006, 3:04 PM"

// Post represents a blog post owned by a single user
type Post struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:varchar(100);not null;unique"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UserID    uint      `json:"user_id" db:"user_id" gorm:"not null;index"`

	User User  `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Tags []Tag `json:"tags,omitempty" gorm:"many2many:post_tags;"`
}

// FriendlyDate formats the creation timestamp for display.
func (p Post) FriendlyDate() string {
	return p.CreatedAt.Format(friendlyDateLayout)
}
