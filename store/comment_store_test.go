package store

import (
	"testing"

	"github.com/Luismorlan/postmux/utils"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	author, err := users.Create("dummy")
	require.NoError(t, err)
	post, err := posts.Create(author, "mmm testing", nil, "")
	require.NoError(t, err)

	_, err = comments.Add(post, author, " ")
	ve := AsValidationError(err)
	require.NotNil(t, ve)
	require.Equal(t, "text", ve.Field)

	comment, err := comments.Add(post, author, "testcomment")
	require.NoError(t, err)
	require.NotEmpty(t, comment.Id)
	require.Equal(t, "dummy", comment.Author.Username)
}

func TestListForPostOldestFirst(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	author, err := users.Create("dummy")
	require.NoError(t, err)
	post, err := posts.Create(author, "mmm testing", nil, "")
	require.NoError(t, err)

	first, err := comments.Add(post, author, "first")
	require.NoError(t, err)
	second, err := comments.Add(post, author, "second")
	require.NoError(t, err)

	listed, err := comments.ListForPost(post)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, first.Id, listed[0].Id)
	require.Equal(t, second.Id, listed[1].Id)
	require.Equal(t, "dummy", listed[0].Author.Username)
}
