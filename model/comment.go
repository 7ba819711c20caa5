package model

import "time"

/*

Comment is a user comment attached to a post.

Id: primary key
Created: time when the comment is created, comments list oldest first
Text: comment body, must be non-empty
PostID:
Post: commented post, "belongs-to" relation, CASCADE on post deletion
AuthorID:
Author: commenting user, "belongs-to" relation, CASCADE on author deletion
*/

type Comment struct {
	Id       string `gorm:"primaryKey"`
	Created  time.Time
	Text     string `gorm:"not null"`
	PostID   string `gorm:"not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post     Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID string `gorm:"not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
