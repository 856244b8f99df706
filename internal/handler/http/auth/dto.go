package auth

import "techup-blog/internal/domain/entity"

type registerRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Password string `json:"password" example:"s3cret!"`
	Username string `json:"username" example:"reader"`
	Name     string `json:"name" example:"Reader One"`
}

type loginRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

type resetPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UserDTO is a local user row as returned by register.
type UserDTO struct {
	ID         string `json:"id" example:"5f7c1a9e-8d1e-4a36-9a55-2d8a0b8c1f10"`
	Username   string `json:"username" example:"reader"`
	Name       string `json:"name" example:"Reader One"`
	Role       string `json:"role" example:"user"`
	ProfilePic string `json:"profile_pic"`
}

type registerResponse struct {
	Message string  `json:"message" example:"User created successfully"`
	User    UserDTO `json:"user"`
}

type loginResponse struct {
	Message     string `json:"message" example:"Signed in successfully"`
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CurrentUserDTO is the body of GET /auth/get-user.
type CurrentUserDTO struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:         u.ID.String(),
		Username:   u.Username,
		Name:       u.Name,
		Role:       string(u.Role),
		ProfilePic: u.ProfilePic,
	}
}
