package domain

import "time"

type User struct {
	ID          int64     `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
