package models

// PostTag is the explicit join row linking one post to one tag. The pair is
// the composite primary key; rows are created and destroyed as a side effect
// of post and tag mutation, never exposed on their own.
type PostTag struct {
	PostID uint `json:"post_id" db:"post_id" gorm:"primaryKey;not null;constraint:OnDelete:CASCADE"`
	TagID  uint `json:"tag_id" db:"tag_id" gorm:"primaryKey;not null;constraint:OnDelete:CASCADE"`
}
