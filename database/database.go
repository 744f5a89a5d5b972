package database

import (
	"errors"

	"github.com/kennywhwu/blogly/errs"
	"github.com/kennywhwu/blogly/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo *UserRepo
	postRepo *PostRepo
	tagRepo  *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo: NewUserRepo(db),
		postRepo: NewPostRepo(db),
		tagRepo:  NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// Migrate creates the four relations with their foreign-key and uniqueness
// constraints. The post/tag join table is registered explicitly so its
// composite-key rows can be maintained directly by the repositories.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Post{}, "Tags", &models.PostTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Tag{}, "Posts", &models.PostTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Tag{},
	)
}

// translate maps gorm errors onto the errs taxonomy so callers only ever see
// structured not-found / conflict / database failures.
func translate(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}
	return errs.NewDatabaseError(operation, entity, err)
}
