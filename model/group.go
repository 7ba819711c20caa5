package model

import "time"

/*

Group is a named topic a post can optionally be published into.

Id: primary key
Title: display name
Slug: unique URL fragment, groups are addressed by slug
Description: free form description

Deleting a group must not delete its posts, the posts' group reference is
nulled instead (SET NULL, not CASCADE).
*/

type Group struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Title       string
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
}
