package store

import (
	"strings"
	"time"

	"github.com/Luismorlan/postmux/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserStore manages author identities. Credentials are out of scope, identity
// resolution happens in the middlewares package.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) Create(username string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &ValidationError{Field: "username", Message: "username must not be empty"}
	}
	user := model.User{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Username:  username,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create user "+username)
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	var user model.User
	queryResult := s.DB.Where("username = ?", username).First(&user)
	if queryResult.RowsAffected != 1 {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Delete removes the user and everything hanging off of it: the user's posts,
// comments on those posts, the user's own comments, and both directions of the
// user's follow edges. The cascade is spelled out here instead of relying on
// schema constraints alone, all inside one transaction.
func (s *UserStore) Delete(user *model.User) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("author_id = ? OR post_id IN (?)",
				user.Id,
				tx.Model(&model.Post{}).Select("id").Where("author_id = ?", user.Id),
			).
			Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", user.Id, user.Id).
			Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.Id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", user.Id).Error
	})
}
