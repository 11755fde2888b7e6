// Package models defines the persisted document shapes. Field names mirror
// the wire format the front end already speaks, so bson and json tags carry
// the historical casing (userEmail, adopt_Req, max_donation_limit).
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the PetAdoption database.
const (
	ColUsers      = "users"
	ColPets       = "pets"
	ColCampaigns  = "adddonationcamp"
	ColAdoptions  = "addtoadopt"
	ColPayments   = "payments"
	ColCategories = "PetCategory"
)

// User is created on first sign-in; re-registering with an existing email
// is a no-op. The owner identity on other entities references User.Email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"` // "Member" | "Admin"
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// Pet is a listed animal. UserEmail is the owner and is immutable once set.
type Pet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`
	Age       string             `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	ShortDesp string             `bson:"shortdesp,omitempty" json:"shortdesp,omitempty"`
	LongDesp  string             `bson:"longdesp,omitempty" json:"longdesp,omitempty"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Adopted   bool               `bson:"adopted" json:"adopted"`
	AddedDate time.Time          `bson:"addedDate,omitempty" json:"addedDate,omitempty"`
}

// DonationCampaign collects donations toward a pet until its deadline.
// Pause is an independently togglable flag, not a state machine.
type DonationCampaign struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	MaxDonationLimit float64            `bson:"max_donation_limit" json:"max_donation_limit"`
	DonatedAmount    float64            `bson:"donated_amount" json:"donated_amount"`
	ShortDesp        string             `bson:"shortdesp,omitempty" json:"shortdesp,omitempty"`
	LongDesp         string             `bson:"longdesp,omitempty" json:"longdesp,omitempty"`
	LastDonationDate string             `bson:"last_donation_date,omitempty" json:"last_donation_date,omitempty"`
	AddedDate        time.Time          `bson:"addedDate,omitempty" json:"addedDate,omitempty"`
	UserEmail        string             `bson:"userEmail" json:"userEmail"`
	Pause            bool               `bson:"pause" json:"pause"`
}

// AdoptionRequest records a member asking to adopt a pet. AdoptReq is nil
// while pending, true once accepted, false once rejected.
type AdoptionRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PetID     string             `bson:"petId" json:"petId"`
	PetName   string             `bson:"petName,omitempty" json:"petName,omitempty"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	AdoptReq  *bool              `bson:"adopt_Req,omitempty" json:"adopt_Req,omitempty"`
}

// Payment is persisted once the client reports a completed charge. It is
// never mutated afterward, only deleted administratively.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	OwnerEmail    string             `bson:"ownerEmail,omitempty" json:"ownerEmail,omitempty"`
	CampaignID    string             `bson:"campId,omitempty" json:"campId,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Date          time.Time          `bson:"date,omitempty" json:"date,omitempty"`
}

// PetCategory backs the public category strip on the home page.
type PetCategory struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Category string             `bson:"category" json:"category"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
}
