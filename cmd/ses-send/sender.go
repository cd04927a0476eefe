package main

import (
	"os"
	"path/filepath"

	"github.com/ericboles/AmazonSesBundle/pkg/common"
	"github.com/rs/xid"
)

// dryRunMailer writes rendered messages to disk instead of SES and
// never touches the sends table
type dryRunMailer struct {
	out string
}

var _ common.Mailer = (*dryRunMailer)(nil)

func (m *dryRunMailer) Send(contact *common.Contact, subject, htmlBody, textBody string) (string, error) {
	token := xid.New().String()
	body := "Subject: " + subject + "\n" +
		common.CorrelationHeader + ": " + token + "\n\n" +
		textBody
	err := os.WriteFile(filepath.Join(m.out, contact.Email+".eml"), []byte(body), 0644)
	return token, err
}
