package models

type Contact struct {
	ID          int64  `json:"id"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	IsFavorite  bool   `json:"is_favorite"`
}

type CreateContactRequest struct {
	Name        string `json:"name" form:"name" validate:"max=100,contactname"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"max=40,contactname"`
	Email       string `json:"email" form:"email" validate:"max=254,contactname"`
}

type UpdateContactRequest struct {
	Name        string `json:"name" validate:"max=100,contactname"`
	PhoneNumber string `json:"phone_number" validate:"max=40,contactname"`
	Email       string `json:"email" validate:"max=254,contactname"`
	// Image keeps the current photo when empty
	Image string `json:"image" validate:"max=1024"`
}

// ContactGroup is one section of the alphabetic contact list
type ContactGroup struct {
	Key      string         `json:"key"`
	Contacts []ContactMatch `json:"contacts"`
}

// NameParts splits a name around the highlighted search match
type NameParts struct {
	Before string `json:"before"`
	Match  string `json:"match"`
	After  string `json:"after"`
}

type ContactMatch struct {
	Contact
	Highlight NameParts `json:"highlight"`
}
