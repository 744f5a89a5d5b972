package models

// DefaultImageURL is stored whenever a user is created or edited without a
// profile image of their own.
const DefaultImageURL = "https://apprecs.org/ios/images/app-icons/256/f6/1014381046.jpg"

// User represents an author account
type User struct {
	ID        uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	FirstName string `json:"first_name" db:"first_name" gorm:"type:varchar(50);not null"`
	LastName  string `json:"last_name" db:"last_name" gorm:"type:varchar(50);not null"`
	ImageURL  string `json:"image_url" db:"image_url" gorm:"type:text;not null"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// FullName returns the user's first and last name joined by a single space.
// Computed on access, never stored.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
