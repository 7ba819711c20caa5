package store

import (
	"strings"
	"time"

	"github.com/Luismorlan/postmux/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostStore is the authoritative collection of posts.
type PostStore struct {
	DB *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{DB: db}
}

// Create publishes a new post for author. group and imageKey are optional.
// PubDate is set to the creation time.
func (s *PostStore) Create(author *model.User, text string, group *model.Group, imageKey string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "text must not be empty"}
	}
	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		PubDate:   time.Now(),
		Text:      text,
		AuthorID:  author.Id,
		Author:    *author,
		ImageKey:  imageKey,
	}
	if group != nil {
		post.GroupID = &group.Id
		post.Group = group
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create post")
	}
	return &post, nil
}

// Edit updates text/group/image of a post. Only the owner can edit: an edit
// attempt by anyone else is refused without error and the post is returned
// unchanged, the caller just redirects back to the post view. On a successful
// edit PubDate is reset to the edit time, which resurfaces the post on top of
// every feed. An empty imageKey keeps the current image.
func (s *PostStore) Edit(post *model.Post, editor *model.User, text string, group *model.Group, imageKey string) (*model.Post, error) {
	if editor == nil || editor.Id != post.AuthorID {
		return post, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "text must not be empty"}
	}

	post.Text = text
	post.PubDate = time.Now()
	if group != nil {
		post.GroupID = &group.Id
		post.Group = group
	} else {
		post.GroupID = nil
		post.Group = nil
	}
	if imageKey != "" {
		post.ImageKey = imageKey
	}

	updates := map[string]interface{}{
		"text":      post.Text,
		"pub_date":  post.PubDate,
		"group_id":  post.GroupID,
		"image_key": post.ImageKey,
	}
	if err := s.DB.Model(&model.Post{}).Where("id = ?", post.Id).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "fail to edit post "+post.Id)
	}
	return post, nil
}

// Get looks a post up by owner username AND post id. A post id that exists
// under a different author is treated as not found.
func (s *PostStore) Get(authorUsername string, postID string) (*model.Post, error) {
	var post model.Post
	queryResult := s.DB.
		Preload("Author").
		Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", postID, authorUsername).
		First(&post)
	if queryResult.RowsAffected != 1 {
		return nil, ErrNotFound
	}
	return &post, nil
}

// ListForAuthor is the reverse lookup backing the profile feed, newest first.
func (s *PostStore) ListForAuthor(author *model.User) ([]*model.Post, error) {
	var posts []*model.Post
	queryResult := s.DB.
		Preload("Author").
		Preload("Group").
		Where("author_id = ?", author.Id).
		Order("pub_date desc, cursor desc").
		Find(&posts)
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "fail to list posts for author "+author.Id)
	}
	return posts, nil
}

// Delete removes a post and its comments in one transaction.
func (s *PostStore) Delete(post *model.Post) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", post.Id).Error
	})
}
