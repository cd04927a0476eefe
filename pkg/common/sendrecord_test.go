package common

import "testing"

func TestFailedAppendsDetails(t *testing.T) {
	r := &SendRecord{
		Token: "token123",
		Email: "jane@example.com",
	}

	r.Failed(ChannelBounced, "AWS: General: unknown")
	r.Failed(ChannelBounced, "AWS: General: unknown")

	if !r.IsFailed {
		t.Errorf("Record is not marked as failed")
	}
	if len(r.Details) != 2 {
		t.Errorf("History was not appended. count=%v", len(r.Details))
	}
	if r.Details[0].Channel != ChannelBounced {
		t.Errorf("Unexpected detail channel. value=%v", r.Details[0].Channel)
	}
}

func TestSendRecordValidate(t *testing.T) {
	r := &SendRecord{}
	r.Validate()
	if r.ID == "" {
		t.Errorf("Record ID was not assigned")
	}

	id := r.ID
	r.Validate()
	if r.ID != id {
		t.Errorf("Record ID was reassigned. before=%v after=%v", id, r.ID)
	}
}

func TestContactValidate(t *testing.T) {
	c := &Contact{Email: "jane@example.com"}
	c.Validate()
	if c.ID == "" {
		t.Errorf("Contact ID was not assigned")
	}
}
