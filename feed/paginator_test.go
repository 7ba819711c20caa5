package feed

import (
	"fmt"
	"testing"

	"github.com/Luismorlan/postmux/store"
	"github.com/Luismorlan/postmux/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPageNumberParsing(t *testing.T) {
	require.Equal(t, 1, PageNumber(""))
	require.Equal(t, 1, PageNumber("abc"))
	require.Equal(t, 1, PageNumber("0"))
	require.Equal(t, 1, PageNumber("-3"))
	require.Equal(t, 7, PageNumber("7"))
}

func TestPaginationCountAndClamp(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	posts := store.NewPostStore(db)
	composer := NewComposer(db, store.NewFollowGraph(db))

	author := seedUser(t, db, "dummy")
	for i := 0; i < 25; i++ {
		_, err := posts.Create(author, fmt.Sprintf("post %d", i), nil, "")
		require.NoError(t, err)
	}

	first, err := composer.Global(1)
	require.NoError(t, err)
	require.Equal(t, int64(25), first.Count)
	require.Equal(t, 3, first.NumPages)
	require.Len(t, first.Posts, PageSize)

	last, err := composer.Global(3)
	require.NoError(t, err)
	require.Len(t, last.Posts, 5)

	// A page number past the end clamps to the last page.
	clamped, err := composer.Global(8)
	require.NoError(t, err)
	require.Equal(t, 3, clamped.Number)
	require.Empty(t, cmp.Diff(postTexts(last.Posts), postTexts(clamped.Posts)))
}

func TestPaginationEmptyFeed(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	composer := NewComposer(db, store.NewFollowGraph(db))

	page, err := composer.Global(1)
	require.NoError(t, err)
	require.Equal(t, int64(0), page.Count)
	require.Equal(t, 1, page.NumPages)
	require.Equal(t, 1, page.Number)
	require.Empty(t, page.Posts)
}
