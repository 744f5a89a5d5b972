package database

import (
	"github.com/kennywhwu/blogly/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TagRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all tags ordered by name
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, translate("find", "tags", err)
}

// FindByID returns a tag by id with its posts loaded
func (r *TagRepo) FindByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Preload("Posts").First(&tag, id).Error; err != nil {
		return nil, translate("find", "tag", err)
	}
	return &tag, nil
}

// Choices returns the current id to name mapping of tags. Queried fresh per
// request so a tag created after a form was loaded is still a valid choice
// on submission.
func (r *TagRepo) Choices() (map[uint]string, error) {
	tags, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	choices := make(map[uint]string, len(tags))
	for _, tag := range tags {
		choices[tag.ID] = tag.Name
	}
	return choices, nil
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	return translate("create", "tag", r.db.Create(tag).Error)
}

// Update overwrites the tag name in place
func (r *TagRepo) Update(tag *models.Tag) error {
	result := r.db.Model(&models.Tag{}).
		Where("id = ?", tag.ID).
		Select("name").
		Updates(tag)
	if result.Error != nil {
		return translate("update", "tag", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("update", "tag", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a tag and its association rows in one transaction. Posts
// keep their other tags; only the link rows go.
func (r *TagRepo) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete", "tag", err)
}
