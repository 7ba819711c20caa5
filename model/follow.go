package model

import "time"

/*

Follow is a directed edge meaning "user receives author's posts in their
following feed".

UserID: the follower
AuthorID: the followed author
CreatedAt: time when relation is created

The composite primary key enforces at most one edge per (user, author) pair at
the store level, so concurrent duplicate follow attempts resolve to a single
edge. Self-follow is refused by the FollowGraph, not by the schema.
*/

type Follow struct {
	UserID    string `gorm:"primaryKey"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  string `gorm:"primaryKey"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}
