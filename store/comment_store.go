package store

import (
	"strings"
	"time"

	"github.com/Luismorlan/postmux/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CommentStore manages comments attached to posts.
type CommentStore struct {
	DB *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{DB: db}
}

// Add attaches a comment to post. The caller guarantees author is an
// authenticated, existing user: anonymous attempts are rejected by the
// middleware before reaching this store.
func (s *CommentStore) Add(post *model.Post, author *model.User, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "text must not be empty"}
	}
	comment := model.Comment{
		Id:       uuid.New().String(),
		Created:  time.Now(),
		Text:     text,
		PostID:   post.Id,
		AuthorID: author.Id,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "fail to add comment to post "+post.Id)
	}
	comment.Author = *author
	return &comment, nil
}

// ListForPost returns the post's comments in creation order, oldest first.
// Reading comments is unrestricted.
func (s *CommentStore) ListForPost(post *model.Post) ([]*model.Comment, error) {
	var comments []*model.Comment
	queryResult := s.DB.
		Preload("Author").
		Where("post_id = ?", post.Id).
		Order("created asc").
		Find(&comments)
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "fail to list comments for post "+post.Id)
	}
	return comments, nil
}

func (s *CommentStore) CountForPost(post *model.Post) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Comment{}).Where("post_id = ?", post.Id).Count(&count).Error
	return count, err
}
