package callback

import "testing"

func TestParseEnvelopeInvalidJSON(t *testing.T) {
	if _, err := ParseEnvelope([]byte("{not json")); err == nil {
		t.Errorf("Malformed body was accepted")
	}
	if _, err := ParseEnvelope([]byte(`"just a string"`)); err == nil {
		t.Errorf("Non-object body was accepted")
	}
}

func TestEnvelopeMissingKeys(t *testing.T) {
	e := mustEnvelope(t, `{"bounce": {"bounceType": "Permanent"}, "count": 3, "tags": []}`)

	if _, ok := e.String("missing"); ok {
		t.Errorf("Missing key reported as present")
	}
	if _, ok := e.String("count"); ok {
		t.Errorf("Number read as string")
	}
	if _, ok := e.Map("tags"); ok {
		t.Errorf("List read as map")
	}
	if _, ok := e.List("bounce"); ok {
		t.Errorf("Map read as list")
	}
}

func TestEnvelopeNestedAccess(t *testing.T) {
	e := mustEnvelope(t, `{"bounce": {"bounceType": "Permanent", "bouncedRecipients": [{"emailAddress": "a@example.com"}]}}`)

	bounce, ok := e.Map("bounce")
	if !ok {
		t.Fatalf("Nested map was not found")
	}
	if v := bounce.StringOr("bounceSubType", "unknown"); v != "unknown" {
		t.Errorf("Default value was not used. value=%v", v)
	}

	recipients, ok := bounce.List("bouncedRecipients")
	if !ok || len(recipients) != 1 {
		t.Fatalf("Recipients list was not found")
	}
	recipient, ok := asEnvelope(recipients[0])
	if !ok {
		t.Fatalf("Recipient is not an object")
	}
	if v, _ := recipient.String("emailAddress"); v != "a@example.com" {
		t.Errorf("Unexpected recipient address. value=%v", v)
	}
}

func TestCorrelationTokenLookup(t *testing.T) {
	e := mustEnvelope(t, `{"mail": {"headers": [
		{"name": "Subject", "value": "hello"},
		{"name": "x-EMAIL-id", "value": "token123"},
		{"name": "X-Email-Id", "value": "second"}
	]}}`)

	token, ok := correlationToken(e)
	if !ok {
		t.Fatalf("Correlation token was not found")
	}
	if token != "token123" {
		t.Errorf("First match was not used. token=%v", token)
	}
}

func TestCorrelationTokenAbsent(t *testing.T) {
	if _, ok := correlationToken(mustEnvelope(t, `{"mail": {"headers": []}}`)); ok {
		t.Errorf("Token found in empty headers")
	}
	if _, ok := correlationToken(mustEnvelope(t, `{"mail": {}}`)); ok {
		t.Errorf("Token found without headers")
	}
	if _, ok := correlationToken(mustEnvelope(t, `{}`)); ok {
		t.Errorf("Token found without mail")
	}
}
