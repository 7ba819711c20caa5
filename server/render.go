package server

import (
	"time"

	"github.com/Luismorlan/postmux/feed"
	"github.com/Luismorlan/postmux/model"
	"github.com/jinzhu/copier"
)

// View types are the context mapping handed to the presentation layer. They
// are copied off the gorm models so handlers never leak schema-only fields
// like cursors or foreign key ids.

type UserView struct {
	Username string `json:"username"`
}

type GroupView struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostView struct {
	Id       string     `json:"id"`
	Text     string     `json:"text"`
	PubDate  time.Time  `json:"pub_date"`
	Author   UserView   `json:"author"`
	Group    *GroupView `json:"group,omitempty"`
	ImageUrl string     `json:"image_url,omitempty"`
}

type CommentView struct {
	Id      string    `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Author  UserView  `json:"author"`
}

type PaginatorView struct {
	Count    int64 `json:"count"`
	NumPages int   `json:"num_pages"`
	Page     int   `json:"page"`
}

func (h *Handlers) renderPost(post *model.Post) *PostView {
	var view PostView
	copier.Copy(&view, post)
	if post.ImageKey != "" {
		view.ImageUrl = h.Files.GetUrlFromKey(post.ImageKey)
	}
	return &view
}

func (h *Handlers) renderPosts(posts []*model.Post) []*PostView {
	views := []*PostView{}
	for _, post := range posts {
		views = append(views, h.renderPost(post))
	}
	return views
}

func (h *Handlers) renderPage(page *feed.Page) ([]*PostView, *PaginatorView) {
	return h.renderPosts(page.Posts), &PaginatorView{
		Count:    page.Count,
		NumPages: page.NumPages,
		Page:     page.Number,
	}
}

func renderComments(comments []*model.Comment) []*CommentView {
	views := []*CommentView{}
	for _, comment := range comments {
		var view CommentView
		copier.Copy(&view, comment)
		views = append(views, &view)
	}
	return views
}

func renderGroup(group *model.Group) *GroupView {
	var view GroupView
	copier.Copy(&view, group)
	return &view
}

func renderUser(user *model.User) *UserView {
	return &UserView{Username: user.Username}
}
