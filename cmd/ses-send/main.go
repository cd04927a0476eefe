package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
	"github.com/ericboles/AmazonSesBundle/pkg/db"
	"github.com/ericboles/AmazonSesBundle/pkg/email"
)

var (
	subjectFlag      = flag.String("subject", "", "Campaign subject")
	fromEmailFlag    = flag.String("from-email", "", "Sender address")
	channelFlag      = flag.String("channel", "", "Channel id recorded with every send")
	sendsTableFlag   = flag.String("sends-table", "", "DynamoDB table for send records")
	htmlTemplateFlag = flag.String("html-template", "", "Path to html email template")
	txtTemplateFlag  = flag.String("txt-template", "", "Path to text email template")
	paramsFlag       = flag.String("params", "params.json", "Path to file with common params")
	listFlag         = flag.String("list", "list.json", "Path to file with contacts")
	workersFlag      = flag.Int("workers", 2, "Number of workers to send emails")
	rateFlag         = flag.Int("rate", 25, "Emails per second sending rate")
	dryRunFlag       = flag.Bool("dry-run", false, "Simulate selected action")
	outFlag          = flag.String("out", "./", "Path to directory for dry run results")
	helpFlag         = flag.Bool("help", false, "Print help")
	logPathFlag      = flag.String("l", "ses-send.log", "Absolute path to log file")
	stdoutFlag       = flag.Bool("stdout", false, "Log to stdout and to logfile")
)

const appName = "ses-send"

func main() {
	err := parseFlags()
	if err != nil {
		flag.PrintDefaults()
		log.Fatal(err.Error())
	}

	logfile, err := setupLogging()
	if err == nil {
		defer logfile.Close()
	}

	htmlTemplate, err := template.ParseFiles(*htmlTemplateFlag)
	if err != nil {
		log.Fatal(err)
	}

	textTemplate, err := template.ParseFiles(*txtTemplateFlag)
	if err != nil {
		log.Fatal(err)
	}

	params, err := readParams(*paramsFlag)
	if err != nil {
		log.Fatal(err)
	}

	contacts, err := readContacts(*listFlag)
	if err != nil {
		log.Fatal(err)
	}

	mailer, err := createMailer()
	if err != nil {
		log.Fatal(err)
	}

	c := &campaign{
		htmlTemplate: htmlTemplate,
		textTemplate: textTemplate,
		params:       params,
		contacts:     contacts,
		subject:      *subjectFlag,
		mailer:       mailer,
		rate:         *rateFlag,
		messages:     make(chan *renderedEmail, 10),
		waiter:       &sync.WaitGroup{},
		workersCount: *workersFlag,
	}

	c.send()
}

func createMailer() (common.Mailer, error) {
	if *dryRunFlag {
		return &dryRunMailer{out: *outFlag}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, err
	}

	return &email.SESMailer{
		Sender:    *fromEmailFlag,
		ChannelID: *channelFlag,
		Svc:       ses.New(sess),
		Sends:     db.NewSendsStore(*sendsTableFlag, sess),
	}, nil
}

func readContacts(filepath string) ([]*common.Contact, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var contacts []*common.Contact
	err = dec.Decode(&contacts)
	if err != nil {
		return nil, err
	}
	log.Printf("Parsed contacts. count=%v", len(contacts))

	return contacts, nil
}

func readParams(filepath string) (map[string]interface{}, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	params := make(map[string]interface{})
	err = json.Unmarshal(data, &params)
	return params, err
}

func setupLogging() (f *os.File, err error) {
	f, err = os.OpenFile(*logPathFlag, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("error opening file: %v", *logPathFlag)
		return nil, err
	}

	if *stdoutFlag || *dryRunFlag {
		mw := io.MultiWriter(os.Stdout, f)
		log.SetOutput(mw)
	} else {
		log.SetOutput(f)
	}

	log.Println("------------------------------")
	log.Println(appName + " log started")

	return f, err
}

func parseFlags() error {
	flag.Parse()

	if *helpFlag {
		return fmt.Errorf("%v sends a campaign through AWS SES", appName)
	}

	if !*dryRunFlag {
		if *fromEmailFlag == "" {
			return fmt.Errorf("sender address is required")
		}
		if *sendsTableFlag == "" {
			return fmt.Errorf("sends table is required")
		}
	}

	return nil
}
