package email

import (
	"bytes"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
	"github.com/go-gomail/gomail"
	"github.com/rs/xid"
)

const (
	xMailer = "AmazonSesBundle/0.1 (https://github.com/ericboles/AmazonSesBundle)"
)

// SESMailer is an implementation of Mailer interface that sends raw
// MIME messages through AWS SES. Every message gets a fresh
// correlation token stamped into its headers and a send record so
// that bounce and complaint notifications can be traced back to the
// contact and channel of the original send.
type SESMailer struct {
	Sender    string
	ChannelID string
	Svc       *ses.SES
	Sends     common.SendsStore
}

var _ common.Mailer = (*SESMailer)(nil)

func (sm *SESMailer) Send(contact *common.Contact, subject, htmlBody, textBody string) (string, error) {
	token := xid.New().String()

	m := gomail.NewMessage()
	m.SetAddressHeader("To", contact.Email, contact.Name)
	m.SetAddressHeader("From", sm.Sender, "")
	m.SetHeader("Subject", subject)
	m.SetHeader("X-Mailer", xMailer)
	m.SetHeader(common.CorrelationHeader, token)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return "", err
	}

	if err := sm.sendRaw(contact.Email, raw.Bytes()); err != nil {
		return "", err
	}

	record := &common.SendRecord{
		Token:     token,
		Email:     common.CleanEmail(contact.Email),
		ContactID: contact.ID,
		ChannelID: sm.ChannelID,
		SentAt:    common.JsonTimeNow(),
	}

	if err := sm.Sends.AddSend(record); err != nil {
		log.Printf("Failed to store send record. token=%v email=%v err=%v", token, contact.Email, err)
		return "", err
	}

	log.Printf("Sent email. email=%v token=%v channel=%v", contact.Email, token, sm.ChannelID)
	return token, nil
}

func (sm *SESMailer) sendRaw(email string, data []byte) error {
	input := &ses.SendRawEmailInput{
		Destinations: []*string{
			aws.String(email),
		},
		Source: aws.String(sm.Sender),
		RawMessage: &ses.RawMessage{
			Data: data,
		},
	}

	_, err := sm.Svc.SendRawEmail(input)

	// Display error messages if they occur.
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case ses.ErrCodeMessageRejected:
				log.Println(ses.ErrCodeMessageRejected, aerr.Error())
			case ses.ErrCodeMailFromDomainNotVerifiedException:
				log.Println(ses.ErrCodeMailFromDomainNotVerifiedException, aerr.Error())
			case ses.ErrCodeConfigurationSetDoesNotExistException:
				log.Println(ses.ErrCodeConfigurationSetDoesNotExistException, aerr.Error())
			default:
				log.Println(aerr.Error())
			}
		} else {
			log.Println(err.Error())
		}

		return err
	}

	return nil
}
