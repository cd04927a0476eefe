package common

import "errors"

// ErrSendNotFound is returned by SendsStore when no record matches
// the (token, email) pair
var ErrSendNotFound = errors.New("send record not found")

// SendsStore is an interface used to manage send records created by
// the outgoing mailer and looked up by the callback processor
type SendsStore interface {
	AddSend(record *SendRecord) error
	GetSend(token, email string) (*SendRecord, error)
	UpdateSend(record *SendRecord) error
}

// ContactsStore is an interface used to look up contacts by address
// when a notification cannot be matched to a specific send
type ContactsStore interface {
	AddContact(contact *Contact) error
	ContactsByEmail(email string) ([]*Contact, error)
}

// SuppressionsStore is an interface used to manage the do-not-contact
// list written from SES bounce and complaint notifications
type SuppressionsStore interface {
	Suppress(s *Suppression) error
	Suppressions() ([]*Suppression, error)
}

// Mailer is an interface for sending correlatable emails to contacts.
// Implementations return the correlation token stamped into the message.
type Mailer interface {
	Send(contact *Contact, subject, htmlBody, textBody string) (token string, err error)
}
