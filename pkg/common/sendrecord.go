package common

import "github.com/rs/xid"

const (
	// Channel values recorded with a suppression
	ChannelBounced      = "bounced"
	ChannelUnsubscribed = "unsubscribed"

	// Scope of a suppression: the contact's default email channel or
	// the specific channel the originating send belonged to
	ScopeGlobal  = "global"
	ScopeChannel = "channel"
)

// SendRecord incapsulates a single outgoing email stored in the
// DynamoDB sends table. The token is echoed back by SES in
// bounce and complaint notifications and ties those events to
// the contact and channel the email was sent for.
type SendRecord struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	Email     string        `json:"email"`
	ContactID string        `json:"contact_id,omitempty"`
	ChannelID string        `json:"channel_id,omitempty"`
	IsFailed  bool          `json:"is_failed"`
	SentAt    JSONTime      `json:"sent_at"`
	Details   []*SendDetail `json:"details,omitempty"`
}

// SendDetail is a single bounce or complaint annotation appended to
// a send record's history. The history is append-only: repeated
// notifications for the same send add entries, never overwrite.
type SendDetail struct {
	Channel string   `json:"channel"`
	Reason  string   `json:"reason"`
	Time    JSONTime `json:"time"`
}

// Failed marks the record as failed and appends a history entry
func (r *SendRecord) Failed(channel, reason string) {
	r.IsFailed = true
	r.Details = append(r.Details, &SendDetail{
		Channel: channel,
		Reason:  reason,
		Time:    JsonTimeNow(),
	})
}

func (r *SendRecord) Validate() {
	if len(r.ID) > 0 {
		return
	}

	guid := xid.New()
	r.ID = guid.String()
}

// Contact is a known recipient stored in the contacts table
type Contact struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name,omitempty"`
	CreatedAt JSONTime `json:"created_at"`
}

func (c *Contact) Validate() {
	if len(c.ID) > 0 {
		return
	}

	guid := xid.New()
	c.ID = guid.String()
}

// Suppression is a durable do-not-contact entry. Entries without a
// contact id are keyed by address only (the legacy path for events
// that could not be correlated to a prior send).
type Suppression struct {
	Email     string   `json:"email"`
	ContactID string   `json:"contact_id,omitempty"`
	Channel   string   `json:"channel"`
	ChannelID string   `json:"channel_id,omitempty"`
	Scope     string   `json:"scope"`
	Reason    string   `json:"reason"`
	CreatedAt JSONTime `json:"created_at"`
}
