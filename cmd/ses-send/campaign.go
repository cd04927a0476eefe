package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log"
	"sync"
	"time"

	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

// renderedEmail is a single message ready to be handed to the mailer
type renderedEmail struct {
	contact *common.Contact
	subject string
	html    string
	text    string
}

type campaign struct {
	htmlTemplate *template.Template
	textTemplate *template.Template
	params       map[string]interface{}
	contacts     []*common.Contact
	subject      string
	mailer       common.Mailer
	rate         int
	workersCount int
	waiter       *sync.WaitGroup
	messages     chan *renderedEmail
}

func (c *campaign) send() {
	log.Printf("Starting to send messages. count=%v", len(c.contacts))
	c.waiter.Add(1)
	go c.generateMessages()
	log.Printf("Starting workers. count=%v", c.workersCount)
	for i := 0; i < c.workersCount; i++ {
		go c.sendMessages(i)
	}
	c.waiter.Wait()
	close(c.messages)
	log.Println("Finished sending messages")
}

func (c *campaign) generateMessages() {
	defer c.waiter.Done()
	rate := time.Second / time.Duration(c.rate)
	throttle := time.Tick(rate)

	for _, contact := range c.contacts {
		m, err := c.renderEmail(contact)
		if err != nil {
			log.Printf("Failed to render message. err=%s", err)
			return
		}
		<-throttle // rate limit
		c.waiter.Add(1)
		c.messages <- m
	}
}

func (c *campaign) renderEmail(contact *common.Contact) (*renderedEmail, error) {
	data, err := json.Marshal(contact)
	if err != nil {
		return nil, err
	}
	recepient := make(map[string]interface{})
	err = json.Unmarshal(data, &recepient)
	if err != nil {
		return nil, err
	}
	ctx := make(map[string]interface{})
	ctx["Params"] = c.params
	ctx["Recepient"] = recepient

	var htmlBodyTpl bytes.Buffer
	if err := c.htmlTemplate.Execute(&htmlBodyTpl, ctx); err != nil {
		return nil, err
	}

	var textBodyTpl bytes.Buffer
	if err := c.textTemplate.Execute(&textBodyTpl, ctx); err != nil {
		return nil, err
	}

	log.Printf("Rendered email message. recepient=%v", contact.Email)
	return &renderedEmail{
		contact: contact,
		subject: c.subject,
		html:    htmlBodyTpl.String(),
		text:    textBodyTpl.String(),
	}, nil
}

func (c *campaign) sendMessages(id int) {
	log.Printf("Started sending messages worker. id=%v", id)
	for m := range c.messages {
		token, err := c.mailer.Send(m.contact, m.subject, m.html, m.text)
		if err != nil {
			log.Printf("Error sending message. err=%s id=%v to=%v", err, id, m.contact.Email)
		} else {
			log.Printf("Sent email. id=%v to=%v token=%v", id, m.contact.Email, token)
		}
		c.waiter.Done()
	}
}
