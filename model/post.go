package model

import "time"

/*

Post is a single publication by a user.

Id: primary key
PubDate: publication time. Set at creation, and reset to the edit time when
	the owner edits the post. All feeds order by PubDate descending, so an
	edited post resurfaces at the top. This is intentional.
Text: post body, must be non-empty
AuthorID:
Author: owning user, "belongs-to" relation. Deleting the author deletes the
	author's posts.
GroupID:
Group: optional topic, "belongs-to" relation. Deleting the group keeps the
	post and nulls this reference.
ImageKey: optional key of an attached image in the file store

Cursor: auto-inc global-unique index to keep a stable relative order between
posts with identical PubDate
*/

type Post struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	PubDate   time.Time `gorm:"index"`
	Text      string    `gorm:"not null"`
	AuthorID  string    `gorm:"not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	ImageKey  string
	Cursor    int32 `gorm:"autoIncrement"`
}
