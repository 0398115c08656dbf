package domain

import "time"

type User struct {
	UserID      string     `json:"id" dynamodbav:"user_id"`
	Email       string     `json:"email,omitempty" dynamodbav:"email"`
	PhoneNumber string     `json:"phoneNumber,omitempty" dynamodbav:"phone_number"`
	Name        string     `json:"name" dynamodbav:"name"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty" dynamodbav:"verified_at"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// PublicUser is the client-facing view of a user. Internal timestamps never
// leave the API.
type PublicUser struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Name        string `json:"name"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.UserID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
	}
}
