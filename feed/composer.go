package feed

import (
	"github.com/Luismorlan/postmux/model"
	"github.com/Luismorlan/postmux/store"
	"gorm.io/gorm"
)

// Composer produces the four feed views. Every view is a deterministic,
// newest-first query restarted per request, there is no cross-request cursor
// state.
type Composer struct {
	DB    *gorm.DB
	Graph *store.FollowGraph
}

func NewComposer(db *gorm.DB, graph *store.FollowGraph) *Composer {
	return &Composer{DB: db, Graph: graph}
}

// postQuery is the shared base for all feed views: posts with author and group
// preloaded, newest first. Cursor breaks ties between posts sharing a PubDate.
func (c *Composer) postQuery() *gorm.DB {
	return c.DB.Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc, cursor desc")
}

// Global returns the requested page of all posts.
func (c *Composer) Global(pageNumber int) (*Page, error) {
	return paginate(c.postQuery(), pageNumber)
}

// Group returns the requested page of posts published into group.
func (c *Composer) Group(group *model.Group, pageNumber int) (*Page, error) {
	return paginate(c.postQuery().Where("posts.group_id = ?", group.Id), pageNumber)
}

// Profile returns the requested page of author's posts, and whether viewer
// follows author. viewer may be nil for anonymous requests, in which case
// following is always false.
func (c *Composer) Profile(viewer *model.User, author *model.User, pageNumber int) (*Page, bool, error) {
	page, err := paginate(c.postQuery().Where("posts.author_id = ?", author.Id), pageNumber)
	if err != nil {
		return nil, false, err
	}
	following := false
	if viewer != nil {
		following, err = c.Graph.IsFollowing(viewer, author)
		if err != nil {
			return nil, false, err
		}
	}
	return page, following, nil
}

// Following returns the requested page of posts whose author is followed by
// viewer. A viewer following nobody gets an empty page.
func (c *Composer) Following(viewer *model.User, pageNumber int) (*Page, error) {
	query := c.postQuery().
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", viewer.Id)
	return paginate(query, pageNumber)
}
