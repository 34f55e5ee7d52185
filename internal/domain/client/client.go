package client

import "errors"

var ErrNotFound = errors.New("client not found")

type Client struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// No uniqueness constraint on email: family members may share contact info.
type CreateClientRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string  `json:"last_name" binding:"required,min=1,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=40"`
	Email     *string `json:"email" binding:"omitempty,email"`
}
