package models

import (
	"net/mail"
	"time"
)

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Avatar       string    `json:"avatar" bson:"avatar"`
	PasswordHash string    `json:"-" bson:"password"`
	Date         time.Time `json:"date" bson:"date"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name field is required"
	} else if len(r.Name) < 2 || len(r.Name) > 30 {
		errors["name"] = "Name must be between 2 and 30 characters"
	}

	if r.Email == "" {
		errors["email"] = "Email field is required"
	} else if !isEmail(r.Email) {
		errors["email"] = "Email is invalid"
	}

	if r.Password == "" {
		errors["password"] = "Password field is required"
	} else if len(r.Password) < 6 || len(r.Password) > 30 {
		errors["password"] = "Password must be between 6 and 30 characters"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email field is required"
	} else if !isEmail(r.Email) {
		errors["email"] = "Email is invalid"
	}

	if r.Password == "" {
		errors["password"] = "Password field is required"
	}

	return errors
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	// Reject the "Name <addr>" form; only a bare address is acceptable input.
	return err == nil && addr.Address == s
}
