package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User is the stored account document, keyed by Username.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username     string             `bson:"username" json:"username"` // lower-cased, unique
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"` // empty for OAuth-only accounts
	Provider     AuthProvider       `bson:"provider" json:"provider"`
	Subject      string             `bson:"subject,omitempty" json:"-"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Profile      Profile            `bson:"profile" json:"profile"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is what login endpoints hand back to the client.
type PublicUser struct {
	Username string       `json:"username"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Avatar   string       `json:"avatar,omitempty"`
	Provider AuthProvider `json:"provider,omitempty"`
}

// OAuthIdentity carries the identity fields an OAuth login may write.
type OAuthIdentity struct {
	Username string
	Name     string
	Email    string
	Provider AuthProvider
	Subject  string
	Avatar   string
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

type UsernameRequest struct {
	Username string `json:"username"`
}
