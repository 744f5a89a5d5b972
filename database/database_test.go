package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kennywhwu/blogly/errs"
	"github.com/kennywhwu/blogly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite store. Pinning the pool to one
// connection keeps the memory database (and its foreign_keys pragma) alive
// for the whole test.
func newTestDB(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, Migrate(db))

	return New(db)
}

func seedUser(t *testing.T, d Database, first, last string) *models.User {
	t.Helper()
	user := &models.User{FirstName: first, LastName: last, ImageURL: models.DefaultImageURL}
	require.NoError(t, d.UserRepo().Add(user))
	return user
}

func seedTag(t *testing.T, d Database, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, d.TagRepo().Add(tag))
	return tag
}

func countPostTags(t *testing.T, d Database) int64 {
	t.Helper()
	var count int64
	require.NoError(t, d.PostRepo().GetDB().Model(&models.PostTag{}).Count(&count).Error)
	return count
}

func Test_UserRepo(t *testing.T) {
	t.Run("created user reads back with full name intact", func(t *testing.T) {
		d := newTestDB(t)
		created := seedUser(t, d, "Jane", "Doe")

		user, err := d.UserRepo().FindByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.FullName())
		assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	})

	t.Run("list is ordered by first then last name", func(t *testing.T) {
		d := newTestDB(t)
		seedUser(t, d, "Zoe", "Adams")
		seedUser(t, d, "Amy", "Young")
		seedUser(t, d, "Amy", "Brown")

		users, err := d.UserRepo().FindAll()
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "Amy Brown", users[0].FullName())
		assert.Equal(t, "Amy Young", users[1].FullName())
		assert.Equal(t, "Zoe Adams", users[2].FullName())
	})

	t.Run("update overwrites the mutable fields in place", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")

		user.FirstName = "Janet"
		user.ImageURL = "https://example.com/janet.png"
		require.NoError(t, d.UserRepo().Update(user))

		updated, err := d.UserRepo().FindByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Janet Doe", updated.FullName())
		assert.Equal(t, "https://example.com/janet.png", updated.ImageURL)
	})

	t.Run("missing ids surface as not found", func(t *testing.T) {
		d := newTestDB(t)

		_, err := d.UserRepo().FindByID(42)
		assert.True(t, errs.IsNotFound(err))

		assert.True(t, errs.IsNotFound(d.UserRepo().Update(&models.User{ID: 42, FirstName: "No", LastName: "One"})))
		assert.True(t, errs.IsNotFound(d.UserRepo().Delete(42)))
	})

	t.Run("delete cascades to posts and their tag links", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		other := seedUser(t, d, "John", "Smith")
		golang := seedTag(t, d, "golang")
		webdev := seedTag(t, d, "webdev")

		first := &models.Post{Title: "First", Content: "...", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(first, []uint{golang.ID, webdev.ID}))
		second := &models.Post{Title: "Second", Content: "...", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(second, []uint{golang.ID}))
		kept := &models.Post{Title: "Kept", Content: "...", UserID: other.ID}
		require.NoError(t, d.PostRepo().Add(kept, []uint{webdev.ID}))

		require.NoError(t, d.UserRepo().Delete(user.ID))

		posts, err := d.PostRepo().FindAll()
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Kept", posts[0].Title)

		// only the surviving post's link remains
		assert.EqualValues(t, 1, countPostTags(t, d))

		// tags themselves are untouched
		tags, err := d.TagRepo().FindAll()
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})
}

func Test_PostRepo(t *testing.T) {
	t.Run("create persists the post and its tag links together", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		golang := seedTag(t, d, "golang")

		post := &models.Post{Title: "Hello", Content: "First post.", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(post, []uint{golang.ID}))

		found, err := d.PostRepo().FindByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", found.Title)
		assert.Equal(t, "Jane Doe", found.User.FullName())
		require.Len(t, found.Tags, 1)
		assert.Equal(t, "golang", found.Tags[0].Name)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("duplicate title is a conflict and adds no row", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")

		require.NoError(t, d.PostRepo().Add(&models.Post{Title: "Hello", Content: "a", UserID: user.ID}, nil))
		err := d.PostRepo().Add(&models.Post{Title: "Hello", Content: "b", UserID: user.ID}, nil)
		assert.True(t, errs.IsConflict(err))

		posts, err := d.PostRepo().FindAll()
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("a bad tag link rolls back the whole create", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		golang := seedTag(t, d, "golang")

		post := &models.Post{Title: "Hello", Content: "a", UserID: user.ID}
		err := d.PostRepo().Add(post, []uint{golang.ID, 999})
		require.Error(t, err)

		posts, findErr := d.PostRepo().FindAll()
		require.NoError(t, findErr)
		assert.Empty(t, posts)
		assert.EqualValues(t, 0, countPostTags(t, d))
	})

	t.Run("latest returns at most five posts newest first", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")

		base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
		titles := []string{"one", "two", "three", "four", "five", "six", "seven"}
		for i, title := range titles {
			post := &models.Post{
				Title:     title,
				Content:   "...",
				UserID:    user.ID,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}
			require.NoError(t, d.PostRepo().Add(post, nil))
		}

		latest, err := d.PostRepo().FindLatest(5)
		require.NoError(t, err)
		require.Len(t, latest, 5)
		assert.Equal(t, "seven", latest[0].Title)
		assert.Equal(t, "three", latest[4].Title)
	})

	t.Run("update touches title and content only", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		golang := seedTag(t, d, "golang")

		post := &models.Post{Title: "Hello", Content: "a", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(post, []uint{golang.ID}))
		createdAt := post.CreatedAt

		post.Title = "Hello again"
		post.Content = "b"
		require.NoError(t, d.PostRepo().Update(post))

		updated, err := d.PostRepo().FindByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello again", updated.Title)
		assert.Equal(t, "b", updated.Content)
		assert.Equal(t, createdAt.Unix(), updated.CreatedAt.Unix())
		require.Len(t, updated.Tags, 1)
	})

	t.Run("updating to an existing title is a conflict", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		require.NoError(t, d.PostRepo().Add(&models.Post{Title: "First", Content: "a", UserID: user.ID}, nil))
		second := &models.Post{Title: "Second", Content: "b", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(second, nil))

		second.Title = "First"
		assert.True(t, errs.IsConflict(d.PostRepo().Update(second)))
	})

	t.Run("delete removes the post and its tag links", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		golang := seedTag(t, d, "golang")

		post := &models.Post{Title: "Hello", Content: "a", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(post, []uint{golang.ID}))

		require.NoError(t, d.PostRepo().Delete(post.ID))

		_, err := d.PostRepo().FindByID(post.ID)
		assert.True(t, errs.IsNotFound(err))
		assert.EqualValues(t, 0, countPostTags(t, d))
	})
}

func Test_TagRepo(t *testing.T) {
	t.Run("list is ordered by name", func(t *testing.T) {
		d := newTestDB(t)
		seedTag(t, d, "webdev")
		seedTag(t, d, "golang")
		seedTag(t, d, "testing")

		tags, err := d.TagRepo().FindAll()
		require.NoError(t, err)
		require.Len(t, tags, 3)
		assert.Equal(t, "golang", tags[0].Name)
		assert.Equal(t, "testing", tags[1].Name)
		assert.Equal(t, "webdev", tags[2].Name)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		d := newTestDB(t)
		seedTag(t, d, "golang")
		assert.True(t, errs.IsConflict(d.TagRepo().Add(&models.Tag{Name: "golang"})))
	})

	t.Run("choices reflect the table at call time", func(t *testing.T) {
		d := newTestDB(t)
		golang := seedTag(t, d, "golang")

		choices, err := d.TagRepo().Choices()
		require.NoError(t, err)
		assert.Equal(t, map[uint]string{golang.ID: "golang"}, choices)

		late := seedTag(t, d, "latecomer")
		choices, err = d.TagRepo().Choices()
		require.NoError(t, err)
		assert.Contains(t, choices, late.ID)
	})

	t.Run("delete removes link rows but leaves posts", func(t *testing.T) {
		d := newTestDB(t)
		user := seedUser(t, d, "Jane", "Doe")
		golang := seedTag(t, d, "golang")
		webdev := seedTag(t, d, "webdev")

		post := &models.Post{Title: "Hello", Content: "a", UserID: user.ID}
		require.NoError(t, d.PostRepo().Add(post, []uint{golang.ID, webdev.ID}))

		require.NoError(t, d.TagRepo().Delete(golang.ID))

		found, err := d.PostRepo().FindByID(post.ID)
		require.NoError(t, err)
		require.Len(t, found.Tags, 1)
		assert.Equal(t, "webdev", found.Tags[0].Name)
	})

	t.Run("missing ids surface as not found", func(t *testing.T) {
		d := newTestDB(t)
		_, err := d.TagRepo().FindByID(42)
		assert.True(t, errs.IsNotFound(err))
		assert.True(t, errs.IsNotFound(d.TagRepo().Delete(42)))
	})
}
