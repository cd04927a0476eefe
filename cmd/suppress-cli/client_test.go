package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ericboles/AmazonSesBundle/pkg/callback"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

const apiToken = "qwerty123456"

var errFromFailingStore = errors.New("Error!")

type memorySuppressions struct {
	items []*common.Suppression
}

var _ common.SuppressionsStore = (*memorySuppressions)(nil)

func (s *memorySuppressions) Suppress(suppression *common.Suppression) error {
	s.items = append(s.items, suppression)
	return nil
}

func (s *memorySuppressions) Suppressions() ([]*common.Suppression, error) {
	return s.items, nil
}

type failingSuppressions struct{}

var _ common.SuppressionsStore = (*failingSuppressions)(nil)

func (s *failingSuppressions) Suppress(suppression *common.Suppression) error {
	return errFromFailingStore
}

func (s *failingSuppressions) Suppressions() ([]*common.Suppression, error) {
	return nil, errFromFailingStore
}

type countingPrinter struct {
	count    int
	rendered bool
}

var _ Printer = (*countingPrinter)(nil)

func (p *countingPrinter) Append(s *common.Suppression) {
	p.count++
}

func (p *countingPrinter) Render() error {
	p.rendered = true
	return nil
}

func newTestServer(store common.SuppressionsStore) *httptest.Server {
	router := http.NewServeMux()
	resource := &callback.CallbackResource{
		APIToken: apiToken,
		Processor: &callback.Processor{
			Suppressions: store,
			Translator:   &common.EnglishTranslator{},
		},
	}
	resource.Setup(router)
	return httptest.NewServer(router)
}

func newTestClient(url string) (*suppressClient, *countingPrinter) {
	printer := &countingPrinter{}
	c := &suppressClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		printer:   printer,
		url:       url,
		authToken: apiToken,
	}
	return c, printer
}

func TestSuppressionsQuery(t *testing.T) {
	c, _ := newTestClient("https://api.example.com/")

	url, err := c.suppressionsQuery()
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://api.example.com"+common.SuppressionsEndpoint {
		t.Errorf("Unexpected query url. url=%v", url)
	}
}

func TestExportSuppressions(t *testing.T) {
	store := &memorySuppressions{}
	store.Suppress(&common.Suppression{
		Email:   "jane@example.com",
		Channel: common.ChannelBounced,
		Scope:   common.ScopeGlobal,
		Reason:  "AWS: General: unknown",
	})
	store.Suppress(&common.Suppression{
		Email:   "joe@example.com",
		Channel: common.ChannelUnsubscribed,
		Scope:   common.ScopeGlobal,
		Reason:  "abuse",
	})

	srv := newTestServer(store)
	defer srv.Close()

	c, printer := newTestClient(srv.URL)
	if err := c.export(); err != nil {
		t.Fatal(err)
	}

	if printer.count != 2 {
		t.Errorf("Unexpected number of exported items. count=%v", printer.count)
	}
	if !printer.rendered {
		t.Errorf("Printer was not rendered")
	}
}

func TestExportFiltersChannel(t *testing.T) {
	store := &memorySuppressions{}
	store.Suppress(&common.Suppression{Email: "jane@example.com", Channel: common.ChannelBounced})
	store.Suppress(&common.Suppression{Email: "joe@example.com", Channel: common.ChannelUnsubscribed})

	srv := newTestServer(store)
	defer srv.Close()

	c, printer := newTestClient(srv.URL)
	c.channel = common.ChannelBounced

	if err := c.export(); err != nil {
		t.Fatal(err)
	}

	if printer.count != 1 {
		t.Errorf("Channel filter did not apply. count=%v", printer.count)
	}
}

func TestExportWrongToken(t *testing.T) {
	srv := newTestServer(&memorySuppressions{})
	defer srv.Close()

	c, printer := newTestClient(srv.URL)
	c.authToken = "wrong-token"

	// the endpoint answers 403 with a plain text body, decoding fails
	if err := c.export(); err == nil {
		t.Errorf("Export with wrong token did not fail")
	}
	if printer.count != 0 {
		t.Errorf("Items exported without auth. count=%v", printer.count)
	}
}

func TestExportFailingStore(t *testing.T) {
	srv := newTestServer(&failingSuppressions{})
	defer srv.Close()

	c, _ := newTestClient(srv.URL)

	if err := c.export(); err == nil {
		t.Errorf("Export from failing store did not fail")
	}
}
