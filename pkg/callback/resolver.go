package callback

import (
	"log"
	"strings"

	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

// correlationToken scans payload.mail.headers for the stamped header
// and returns its value. Header order is preserved from the payload
// and only the first match is used.
func correlationToken(payload Envelope) (string, bool) {
	mail, ok := payload.Map("mail")
	if !ok {
		return "", false
	}

	headers, ok := mail.List("headers")
	if !ok {
		return "", false
	}

	for _, h := range headers {
		header, ok := asEnvelope(h)
		if !ok {
			continue
		}
		name, ok := header.String("name")
		if !ok {
			continue
		}
		if strings.EqualFold(name, common.CorrelationHeader) {
			value, _ := header.String("value")
			return value, true
		}
	}

	return "", false
}

type identityKind int

const (
	// no correlation token in the payload, legacy address-only path
	identityNotFound identityKind = iota
	// token matched a unique prior send record
	identityRecord
	// token present but no record matched, fell back to contacts by address
	identityContacts
)

// resolvedIdentity is the tagged result of the two-step correlation
// lookup. It is computed once per recipient event and discarded after
// the suppression write.
type resolvedIdentity struct {
	kind     identityKind
	record   *common.SendRecord
	contacts []*common.Contact
}

func (p *Processor) resolveIdentity(payload Envelope, email string) *resolvedIdentity {
	token, ok := correlationToken(payload)
	if !ok || token == "" {
		return &resolvedIdentity{kind: identityNotFound}
	}

	record, err := p.Sends.GetSend(token, email)
	if err == nil && record != nil {
		return &resolvedIdentity{kind: identityRecord, record: record}
	}
	if err != nil && err != common.ErrSendNotFound {
		log.Printf("Failed to look up send record. token=%v email=%v err=%v", token, email, err)
	}

	contacts, err := p.Contacts.ContactsByEmail(email)
	if err != nil {
		log.Printf("Failed to look up contacts. email=%v err=%v", email, err)
	}

	return &resolvedIdentity{kind: identityContacts, contacts: contacts}
}
