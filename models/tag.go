package models

// Tag represents a label that can be attached to any number of posts
type Tag struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name string `json:"name" db:"name" gorm:"type:varchar(50);not null;unique"`

	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_tags;"`
}
