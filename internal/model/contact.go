package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact represents a message submitted via the contact form.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	// IPAddress is the originating address of the submission, when known.
	IPAddress string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
}

// ContactListOptions carries pagination parameters for the admin listing.
type ContactListOptions struct {
	Page  int
	Limit int
}

// ContactPage is one page of the admin contact listing.
type ContactPage struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}
