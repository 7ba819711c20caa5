package store

import (
	"time"

	"github.com/Luismorlan/postmux/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowGraph manages the directed follower -> followed edges between users.
type FollowGraph struct {
	DB *gorm.DB
}

func NewFollowGraph(db *gorm.DB) *FollowGraph {
	return &FollowGraph{DB: db}
}

// Follow creates the (user, author) edge. It is idempotent: if the edge
// already exists this is a no-op, the composite primary key plus ON CONFLICT
// DO NOTHING make concurrent duplicate attempts resolve to a single edge.
// Self-follow attempts are silently refused.
func (g *FollowGraph) Follow(user *model.User, author *model.User) error {
	if user.Id == author.Id {
		return nil
	}
	edge := model.Follow{
		UserID:    user.Id,
		AuthorID:  author.Id,
		CreatedAt: time.Now(),
	}
	queryResult := g.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if queryResult.Error != nil {
		return errors.Wrap(queryResult.Error, "fail to create follow edge")
	}
	return nil
}

// Unfollow removes the (user, author) edge if present. Removing an absent
// edge is a no-op here, callers that require existence check IsFollowing
// themselves.
func (g *FollowGraph) Unfollow(user *model.User, author *model.User) error {
	queryResult := g.DB.
		Where("user_id = ? AND author_id = ?", user.Id, author.Id).
		Delete(&model.Follow{})
	if queryResult.Error != nil {
		return errors.Wrap(queryResult.Error, "fail to delete follow edge")
	}
	return nil
}

func (g *FollowGraph) IsFollowing(user *model.User, author *model.User) (bool, error) {
	var count int64
	err := g.DB.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", user.Id, author.Id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "fail to query follow edge")
	}
	return count > 0, nil
}

// FollowedAuthors returns every author the user follows.
func (g *FollowGraph) FollowedAuthors(user *model.User) ([]*model.User, error) {
	var authors []*model.User
	queryResult := g.DB.Model(&model.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", user.Id).
		Find(&authors)
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "fail to list followed authors")
	}
	return authors, nil
}
