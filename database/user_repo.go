package database

import (
	"github.com/kennywhwu/blogly/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *UserRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all users ordered by first then last name
func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("first_name, last_name").Find(&users).Error
	return users, translate("find", "users", err)
}

// FindByID returns a user by id with their posts loaded
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Posts").First(&user, id).Error; err != nil {
		return nil, translate("find", "user", err)
	}
	return &user, nil
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return translate("create", "user", r.db.Create(user).Error)
}

// Update overwrites the mutable user fields in place
func (r *UserRepo) Update(user *models.User) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("first_name", "last_name", "image_url").
		Updates(user)
	if result.Error != nil {
		return translate("update", "user", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("update", "user", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a user and cascades to their posts. The cascade is an
// explicit traversal deleted deepest-first inside one transaction: the
// posts' association rows, then the posts, then the user. A failure at any
// step rolls the whole operation back.
func (r *UserRepo) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete", "user", err)
}
