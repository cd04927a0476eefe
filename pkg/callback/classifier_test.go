package callback

import "testing"

func TestDiscriminatorPriority(t *testing.T) {
	e := Envelope{
		"Type":             "Notification",
		"eventType":        "Bounce",
		"notificationType": "Complaint",
	}

	typ, ok := Discriminator(e)
	if !ok {
		t.Fatalf("Discriminator was not found")
	}
	if typ != "Notification" {
		t.Errorf("Primary key did not win. type=%v", typ)
	}
}

func TestDiscriminatorAlternateKeys(t *testing.T) {
	typ, ok := Discriminator(Envelope{"eventType": "Bounce"})
	if !ok || typ != "Bounce" {
		t.Errorf("eventType was not used. type=%v ok=%v", typ, ok)
	}

	typ, ok = Discriminator(Envelope{"notificationType": "Complaint"})
	if !ok || typ != "Complaint" {
		t.Errorf("notificationType was not used. type=%v ok=%v", typ, ok)
	}
}

func TestDiscriminatorMissing(t *testing.T) {
	if _, ok := Discriminator(Envelope{"foo": "bar"}); ok {
		t.Errorf("Discriminator found in unrelated payload")
	}
	if _, ok := Discriminator(Envelope{"Type": 42}); ok {
		t.Errorf("Non-string discriminator was accepted")
	}
}

func TestEnvelopeGate(t *testing.T) {
	accepted := []string{TypeNotification, TypeSubscriptionConfirmation, TypeUnsubscribeConfirmation}
	for _, typ := range accepted {
		if !IsEnvelopeType(typ) {
			t.Errorf("Envelope type was not accepted. type=%v", typ)
		}
	}

	// nested-only types never arrive at the top level
	declined := []string{TypeDelivery, TypeBounce, TypeComplaint, "Whatever"}
	for _, typ := range declined {
		if IsEnvelopeType(typ) {
			t.Errorf("Foreign type was accepted. type=%v", typ)
		}
	}
}
