package entity

import "github.com/google/uuid"

// Identity is the subject the identity provider vouches for.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Session is what the provider returns for a successful sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	User         Identity
}
