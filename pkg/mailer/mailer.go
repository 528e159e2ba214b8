package mailer

import "context"

type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Message struct {
	To      []EmailAddress
	Subject string
	Text    string
	HTML    string
}

// Mailer - контракт отправки почты. Реализации: SendGrid и mock для тестов.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
