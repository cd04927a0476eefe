package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

var (
	urlFlag       = flag.String("url", "", "Base URL to the callback API")
	authTokenFlag = flag.String("auth-token", "", "Auth token for admin access")
	formatFlag    = flag.String("format", "table", "Ouput format of suppressions: csv|tsv|table|raw")
	channelFlag   = flag.String("channel", "", "(optional) Only export bounced|unsubscribed entries")
	logPathFlag   = flag.String("l", "suppress-cli.log", "Absolute path to log file")
	stdoutFlag    = flag.Bool("stdout", false, "Log to stdout and to logfile")
	dryRunFlag    = flag.Bool("dry-run", false, "Simulate selected action")
	helpFlag      = flag.Bool("help", false, "Print help")
)

const appName = "suppress-cli"

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

	client := &suppressClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		printer:   NewPrinter(),
		url:       *urlFlag,
		authToken: *authTokenFlag,
		dryRun:    *dryRunFlag,
		channel:   *channelFlag,
	}

	err = client.export()
	if err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func NewPrinter() Printer {
	switch *formatFlag {
	case "csv":
		return NewCSVPrinter()
	case "tsv":
		return NewTSVPrinter()
	case "raw":
		return NewRawPrinter()
	default:
		return NewTablePrinter()
	}
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
		return fmt.Errorf("%v exports the suppression list", appName)
	}

	if *urlFlag == "" {
		return fmt.Errorf("base URL is required")
	}

	return nil
}
