package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_UserFullName(t *testing.T) {
	user := User{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", user.FullName())
}

func Test_PostFriendlyDate(t *testing.T) {
	t.Run("afternoon", func(t *testing.T) {
		post := Post{CreatedAt: time.Date(2025, time.February, 1, 15, 5, 0, 0, time.UTC)}
		assert.Equal(t, "Sat Feb 1 2025, 3:05 PM", post.FriendlyDate())
	})

	t.Run("morning, day unpadded", func(t *testing.T) {
		post := Post{CreatedAt: time.Date(2024, time.July, 4, 9, 30, 0, 0, time.UTC)}
		assert.Equal(t, "Thu Jul 4 2024, 9:30 AM", post.FriendlyDate())
	})
}
