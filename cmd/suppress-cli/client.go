package main

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

var (
	emptySuppressions []*common.Suppression
)

type suppressClient struct {
	client    *http.Client
	printer   Printer
	url       string
	authToken string
	dryRun    bool
	channel   string
}

func (c *suppressClient) suppressionsQuery() (string, error) {
	baseURL := strings.TrimSuffix(c.url, "/") + common.SuppressionsEndpoint
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (c *suppressClient) fetchSuppressions(url string) ([]*common.Suppression, error) {
	log.Printf("About to fetch suppressions. url=%v", url)
	if c.dryRun {
		log.Println("Dry run mode. Exiting...")
		return emptySuppressions, nil
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth("any", c.authToken)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	log.Printf("Received suppressions response. status=%v", resp.StatusCode)

	defer resp.Body.Close()
	ss := make([]*common.Suppression, 0)
	err = json.NewDecoder(resp.Body).Decode(&ss)
	return ss, err
}

func (c *suppressClient) export() error {
	endpoint, err := c.suppressionsQuery()
	if err != nil {
		return err
	}

	suppressions, err := c.fetchSuppressions(endpoint)
	if err != nil {
		return err
	}

	for _, s := range suppressions {
		if c.channel != "" && s.Channel != c.channel {
			log.Printf("Skipping suppression of other channel. email=%v channel=%v", s.Email, s.Channel)
			continue
		}
		c.printer.Append(s)
	}

	return c.printer.Render()
}
