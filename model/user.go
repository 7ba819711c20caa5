package model

import "time"

/*

User is an author identity in the system. Credentials are not stored here,
identity resolution is delegated to the identity provider in middlewares.

Id: primary key
CreatedAt: time when entity is created
Username: unique handle, used in profile/post URLs

Deleting a user hard-deletes the user's posts and comments, and both sides of
the user's follow edges. There is no soft delete in this application.
*/

type User struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Username  string `gorm:"uniqueIndex;not null"`
}
