package store

import (
	"strings"
	"time"

	"github.com/Luismorlan/postmux/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GroupDirectory is the collection of named topics posts can belong to.
type GroupDirectory struct {
	DB *gorm.DB
}

func NewGroupDirectory(db *gorm.DB) *GroupDirectory {
	return &GroupDirectory{DB: db}
}

func (d *GroupDirectory) Create(title string, slug string, description string) (*model.Group, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, &ValidationError{Field: "slug", Message: "slug must not be empty"}
	}
	group := model.Group{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := d.DB.Create(&group).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create group "+slug)
	}
	return &group, nil
}

func (d *GroupDirectory) GetBySlug(slug string) (*model.Group, error) {
	var group model.Group
	queryResult := d.DB.Where("slug = ?", slug).First(&group)
	if queryResult.RowsAffected != 1 {
		return nil, ErrNotFound
	}
	return &group, nil
}

// ListPosts returns the group's posts, newest first.
func (d *GroupDirectory) ListPosts(group *model.Group) ([]*model.Post, error) {
	var posts []*model.Post
	queryResult := d.DB.
		Preload("Author").
		Preload("Group").
		Where("group_id = ?", group.Id).
		Order("pub_date desc, cursor desc").
		Find(&posts)
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "fail to list posts for group "+group.Slug)
	}
	return posts, nil
}

// Delete removes the group but keeps its posts: dependent posts get their
// group reference nulled (SET NULL, not CASCADE).
func (d *GroupDirectory) Delete(group *model.Group) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("group_id = ?", group.Id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, "id = ?", group.Id).Error
	})
}
