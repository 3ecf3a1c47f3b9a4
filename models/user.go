package models

import (
	"github.com/google/uuid"
)

// User mirrors the account record issued by the identity provider.
// Signup, login and token issuance happen outside this service; we only
// resolve the authenticated id carried in the bearer token.
type User struct {
	Model
	Fullname  string `json:"fullname"`
	Username  string `json:"username" gorm:"uniqueIndex;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Telephone string `json:"telephone" gorm:"default:null"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsActive  bool   `json:"-" gorm:"default:true"`
}

// PublicUser is the projection shown to counterparts in conversations.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"full_name"`
	Avatar   string    `json:"avatar,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Avatar:   u.AvatarURL,
	}
}
