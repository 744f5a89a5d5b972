package database

import (
	"github.com/kennywhwu/blogly/models"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *PostRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all posts with their tags and owners loaded
func (r *PostRepo) FindAll() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Tags").Preload("User").Find(&posts).Error
	return posts, translate("find", "posts", err)
}

// FindLatest returns the newest posts first, at most limit of them
func (r *PostRepo) FindLatest(limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Tags").Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, translate("find", "posts", err)
}

// FindByID returns a post by id with its tags and owner loaded
func (r *PostRepo) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Tags").Preload("User").First(&post, id).Error; err != nil {
		return nil, translate("find", "post", err)
	}
	return &post, nil
}

// Add inserts a new post and its association rows atomically. Either the
// post row and every selected tag link commit together, or nothing does.
func (r *PostRepo) Add(post *models.Post, tagIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			link := models.PostTag{PostID: post.ID, TagID: tagID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate("create", "post", err)
}

// Update overwrites title and content only; the tag set, owner and creation
// timestamp are immutable here.
func (r *PostRepo) Update(post *models.Post) error {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		Select("title", "content").
		Updates(post)
	if result.Error != nil {
		return translate("update", "post", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("update", "post", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a post and its association rows in one transaction.
func (r *PostRepo) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete", "post", err)
}
