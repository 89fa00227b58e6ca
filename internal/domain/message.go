package domain

import (
	"time"
)

type MessageStatus string

const (
	MessageStatusPending  MessageStatus = "PENDING"
	MessageStatusAccepted MessageStatus = "ACCEPTED"
	MessageStatusRejected MessageStatus = "REJECTED"
)

func (s MessageStatus) IsValid() bool {
	return s == MessageStatusPending || s == MessageStatusAccepted || s == MessageStatusRejected
}

// Message is a booking/contact request against a listing.
type Message struct {
	ID        int64         `json:"id"`
	ListingID int64         `json:"listingId"`
	UserID    *int64        `json:"userId"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Message   string        `json:"message"`
	Days      int           `json:"days"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type MessageListingSummary struct {
	ID     int64  `json:"id"`
	NameEn string `json:"nameEn"`
	Price  int64  `json:"price"`
}

type MessageUserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageWithRelations is a message with summaries of the listing and user it
// refers to. A summary is nil when the related row no longer exists.
type MessageWithRelations struct {
	Message
	Listing *MessageListingSummary `json:"listing"`
	User    *MessageUserSummary    `json:"user"`
}

// CreateMessageDTO keeps loosely typed values: clients send ids and days both
// as numbers and as strings.
type CreateMessageDTO struct {
	ListingID any `json:"listingId"`
	UserID    any `json:"userId"`
	Name      any `json:"name"`
	Phone     any `json:"phone"`
	Message   any `json:"message"`
	Days      any `json:"days"`
}

// NewMessage is a validated message ready to be stored.
type NewMessage struct {
	ListingID int64
	UserID    *int64
	Name      string
	Phone     string
	Message   string
	Days      int
	Status    MessageStatus
}

type UpdateMessageStatusDTO struct {
	Status MessageStatus `json:"status"`
}
