package email

import "context"

// Message is a plain-text email ready for delivery
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Sender delivers a composed message through some transport
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
