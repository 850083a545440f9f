package models

import "time"

// User is a document in the users collection, keyed by email.
// PasswordHash is never serialized into a response.
type User struct {
	Name         string    `json:"name"                bson:"name"`
	Email        string    `json:"email"               bson:"email"`
	PasswordHash string    `json:"-"                   bson:"passwordHash"`
	Phone        string    `json:"phone"               bson:"phone"`
	Image        string    `json:"image,omitempty"     bson:"image,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// LoginView is the shape returned by POST /login: the stored record
// minus passwordHash and minus the image field. An explicit redaction
// list, not a whitelist.
func (u *User) LoginView() map[string]interface{} {
	view := map[string]interface{}{
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	}
	if !u.UpdatedAt.IsZero() {
		view["updatedAt"] = u.UpdatedAt
	}
	return view
}

// CreateUserRequest is the JSON body for POST /create_user. Clients
// send the raw password under the "passwordHash" key; hashing happens
// server-side.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"passwordHash"`
	Phone    string `json:"phone"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"passwordHash"`
}

// ChangePasswordRequest is the JSON body for PUT /change_password/{email}.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
