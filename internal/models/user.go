package model

type User struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	Username       string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	HashedPassword string `gorm:"not null" json:"-"`
}
