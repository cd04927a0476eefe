package callback

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

// Outcome aggregates the result of processing one callback request.
// Exactly one exists per request and feeds the HTTP response.
type Outcome struct {
	TypeFound bool
	HasError  bool
	Message   string
}

// Processor classifies SES notifications and applies suppression
// updates through the injected stores
type Processor struct {
	Sends        common.SendsStore
	Contacts     common.ContactsStore
	Suppressions common.SuppressionsStore
	Translator   common.Translator
	// Client issues the subscription confirmation GET. Timeouts are
	// its responsibility, no retries happen here.
	Client *http.Client
}

func (p *Processor) trans(key string, args ...interface{}) string {
	return p.Translator.Trans(key, args...)
}

func (p *Processor) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

// ProcessPayload dispatches a classified payload to its handler and
// returns the Outcome. The Notification branch re-enters this
// function with the unwrapped inner message.
func (p *Processor) ProcessPayload(payload Envelope, typ string) *Outcome {
	out := &Outcome{Message: common.MsgProcessed}

	switch typ {
	case TypeSubscriptionConfirmation:
		out.TypeFound = true
		url, ok := payload.String("SubscribeURL")
		if !ok || url == "" {
			out.HasError = true
			out.Message = p.trans(common.KeyInvalidPayload)
			break
		}
		if err := p.confirmSubscription(url); err != nil {
			log.Printf("Failed to confirm subscription. url=%v err=%v", url, err)
			out.HasError = true
			out.Message = p.trans(common.KeySubscribeError)
		}

	case TypeNotification:
		out.TypeFound = true
		message, ok := payload.String("Message")
		if !ok {
			out.HasError = true
			out.Message = p.trans(common.KeyInvalidPayload)
			break
		}
		inner, err := ParseEnvelope([]byte(message))
		if err != nil {
			log.Printf("Failed to decode notification message. err=%v", err)
			out.HasError = true
			out.Message = p.trans(common.KeyNotificationInvalid)
			break
		}
		innerType, _ := inner.String("notificationType")
		// The inner outcome never reaches the HTTP response, only a
		// decode failure above does. Kept for compatibility with the
		// original callback behaviour.
		p.ProcessPayload(inner, innerType)

	case TypeDelivery:
		out.TypeFound = true

	case TypeComplaint:
		out.TypeFound = true
		p.processComplaint(payload)

	case TypeBounce:
		out.TypeFound = true
		p.processBounce(payload)

	default:
		log.Printf("Received SES webhook of unknown type. type=%v payload=%v", typ, payload)
	}

	if !out.TypeFound {
		out.Message = p.trans(common.KeyUnknownType, typ)
	}

	return out
}

// confirmSubscription issues the outbound GET to the SubscribeURL.
// Anything other than a 200 is a handled failure; the reason is
// logged by the caller, never returned to the remote side.
func (p *Processor) confirmSubscription(url string) error {
	resp, err := p.httpClient().Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected confirmation response. status=%v body=%s", resp.StatusCode, body)
	}

	return nil
}

func (p *Processor) processBounce(payload Envelope) {
	bounce, ok := payload.Map("bounce")
	if !ok {
		log.Printf("Bounce notification without bounce field. payload=%v", payload)
		return
	}

	// Transient and undetermined bounces are ignored on purpose:
	// the address may still be deliverable
	if bounceType, _ := bounce.String("bounceType"); bounceType != "Permanent" {
		log.Printf("Ignoring non-permanent bounce. type=%v", bounceType)
		return
	}

	subType := bounce.StringOr("bounceSubType", "unknown")
	recipients, ok := bounce.List("bouncedRecipients")
	if !ok {
		log.Printf("Bounce notification without recipients. payload=%v", payload)
		return
	}

	for _, r := range recipients {
		recipient, ok := asEnvelope(r)
		if !ok {
			continue
		}
		address, ok := recipient.String("emailAddress")
		if !ok {
			continue
		}
		reason := fmt.Sprintf("AWS: %v: %v", subType, recipient.StringOr("diagnosticCode", "unknown"))
		p.applySuppression(payload, address, reason, common.ChannelBounced)
	}
}

func (p *Processor) processComplaint(payload Envelope) {
	complaint, ok := payload.Map("complaint")
	if !ok {
		log.Printf("Complaint notification without complaint field. payload=%v", payload)
		return
	}

	recipients, ok := complaint.List("complainedRecipients")
	if !ok {
		log.Printf("Complaint notification without recipients. payload=%v", payload)
		return
	}

	reason := complaint.StringOr("complaintFeedbackType", "unknown")

	for _, r := range recipients {
		recipient, ok := asEnvelope(r)
		if !ok {
			continue
		}
		address, ok := recipient.String("emailAddress")
		if !ok {
			continue
		}
		p.applySuppression(payload, address, reason, common.ChannelUnsubscribed)
	}
}

// applySuppression correlates one recipient event back to its send
// and writes the do-not-contact entry. Store failures are logged and
// not retried; a recipient that matches nothing is not an error.
func (p *Processor) applySuppression(payload Envelope, address, reason, channel string) {
	email := common.CleanEmail(address)
	if err := common.ValidateEmail(email); err != nil {
		log.Printf("Skipping recipient with invalid email. value=%q err=%v", address, err)
		return
	}

	identity := p.resolveIdentity(payload, email)

	switch identity.kind {
	case identityNotFound:
		// legacy path: no token in the message headers
		p.suppress(&common.Suppression{
			Email:   email,
			Channel: channel,
			Scope:   common.ScopeGlobal,
			Reason:  reason,
		})

	case identityRecord:
		record := identity.record
		record.Failed(channel, reason)
		if err := p.Sends.UpdateSend(record); err != nil {
			log.Printf("Failed to update send record. id=%v err=%v", record.ID, err)
		}
		if record.ContactID == "" {
			log.Printf("Send record has no contact. id=%v email=%v", record.ID, email)
			return
		}
		p.suppress(&common.Suppression{
			Email:     email,
			ContactID: record.ContactID,
			Channel:   channel,
			ChannelID: record.ChannelID,
			Scope:     common.ScopeChannel,
			Reason:    reason,
		})

	case identityContacts:
		if len(identity.contacts) == 0 {
			log.Printf("No contacts match bounced address, nothing to do. email=%v", email)
			return
		}
		for _, contact := range identity.contacts {
			p.suppress(&common.Suppression{
				Email:     email,
				ContactID: contact.ID,
				Channel:   channel,
				Scope:     common.ScopeChannel,
				Reason:    reason,
			})
		}
	}
}

func (p *Processor) suppress(s *common.Suppression) {
	s.CreatedAt = common.JsonTimeNow()
	if err := p.Suppressions.Suppress(s); err != nil {
		log.Printf("Failed to store suppression. email=%v channel=%v err=%v", s.Email, s.Channel, err)
		return
	}
	log.Printf("Stored suppression. email=%v channel=%v scope=%v reason=%q", s.Email, s.Channel, s.Scope, s.Reason)
}
