package store

import (
	"os"
	"testing"
	"time"

	"github.com/Luismorlan/postmux/utils"
	"github.com/Luismorlan/postmux/utils/dotenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestCreatePost(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	groups := NewGroupDirectory(db)
	posts := NewPostStore(db)

	author, err := users.Create("dummy")
	require.NoError(t, err)
	group, err := groups.Create("test group", "test", "testing")
	require.NoError(t, err)

	t.Run("empty text is rejected", func(t *testing.T) {
		_, err := posts.Create(author, "   ", group, "")
		ve := AsValidationError(err)
		require.NotNil(t, ve)
		require.Equal(t, "text", ve.Field)
	})

	t.Run("valid post gets a pub date and group", func(t *testing.T) {
		post, err := posts.Create(author, "mmm testing", group, "")
		require.NoError(t, err)
		require.NotEmpty(t, post.Id)
		require.False(t, post.PubDate.IsZero())

		stored, err := posts.Get(author.Username, post.Id)
		require.NoError(t, err)
		require.Equal(t, "mmm testing", stored.Text)
		require.Equal(t, group.Id, *stored.GroupID)
		require.Equal(t, author.Username, stored.Author.Username)
	})
}

func TestEditByNonOwnerIsInert(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	groups := NewGroupDirectory(db)
	posts := NewPostStore(db)

	owner, err := users.Create("dummy")
	require.NoError(t, err)
	stranger, err := users.Create("second_dummy")
	require.NoError(t, err)
	group, err := groups.Create("test group", "test", "testing")
	require.NoError(t, err)

	post, err := posts.Create(owner, "original", group, "cat.gif")
	require.NoError(t, err)

	_, err = posts.Edit(post, stranger, "hijacked", nil, "dog.gif")
	require.NoError(t, err)

	stored, err := posts.Get(owner.Username, post.Id)
	require.NoError(t, err)
	require.Equal(t, "original", stored.Text)
	require.Equal(t, group.Id, *stored.GroupID)
	require.Equal(t, "cat.gif", stored.ImageKey)
}

func TestEditByOwnerResetsPubDate(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)

	owner, err := users.Create("dummy")
	require.NoError(t, err)
	post, err := posts.Create(owner, "original", nil, "")
	require.NoError(t, err)
	originalPubDate := post.PubDate

	time.Sleep(10 * time.Millisecond)
	_, err = posts.Edit(post, owner, "edited", nil, "")
	require.NoError(t, err)

	stored, err := posts.Get(owner.Username, post.Id)
	require.NoError(t, err)
	require.Equal(t, "edited", stored.Text)
	require.True(t, stored.PubDate.After(originalPubDate))
}

func TestEditCanDropGroup(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	groups := NewGroupDirectory(db)
	posts := NewPostStore(db)

	owner, err := users.Create("dummy")
	require.NoError(t, err)
	group, err := groups.Create("test group", "test", "testing")
	require.NoError(t, err)
	post, err := posts.Create(owner, "original", group, "")
	require.NoError(t, err)

	_, err = posts.Edit(post, owner, "edited", nil, "")
	require.NoError(t, err)

	stored, err := posts.Get(owner.Username, post.Id)
	require.NoError(t, err)
	require.Nil(t, stored.GroupID)
}

func TestGetIsScopedByAuthor(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)

	owner, err := users.Create("dummy")
	require.NoError(t, err)
	other, err := users.Create("second_dummy")
	require.NoError(t, err)
	post, err := posts.Create(owner, "mmm testing", nil, "")
	require.NoError(t, err)

	// The post exists, but not under this author.
	_, err = posts.Get(other.Username, post.Id)
	require.True(t, IsNotFound(err))

	_, err = posts.Get(owner.Username, "no-such-id")
	require.True(t, IsNotFound(err))
}

func TestDeletePostRemovesComments(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	owner, err := users.Create("dummy")
	require.NoError(t, err)
	post, err := posts.Create(owner, "mmm testing", nil, "")
	require.NoError(t, err)
	_, err = comments.Add(post, owner, "testcomment")
	require.NoError(t, err)

	require.NoError(t, posts.Delete(post))

	_, err = posts.Get(owner.Username, post.Id)
	require.True(t, IsNotFound(err))
	count, err := comments.CountForPost(post)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
