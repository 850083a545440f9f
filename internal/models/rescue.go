package models

import "time"

// DefaultRescueImage is stored when a rescue is created without one.
const DefaultRescueImage = "assets/images/rescue.jpeg"

// Rescue is a posted food-pickup event, keyed by rescue_id. The email
// field references the owning user by value; referential integrity is
// not enforced (deleting a user leaves their rescues in place).
type Rescue struct {
	RescueID  string    `json:"rescue_id"           bson:"rescue_id"`
	Title     string    `json:"title"               bson:"title"`
	Desc      string    `json:"desc"                bson:"desc"`
	Date      string    `json:"date"                bson:"date"`
	Email     string    `json:"email"               bson:"email"`
	Location  string    `json:"location"            bson:"location"`
	Phone     string    `json:"phone"               bson:"phone"`
	Image     string    `json:"image"               bson:"image"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateRescueRequest is the JSON body for POST /create_rescue.
type CreateRescueRequest struct {
	RescueID string `json:"rescue_id"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Date     string `json:"date"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
}
