package callback

// Notification types delivered by the SNS push callback. Only the
// first three arrive at the top level; Delivery, Bounce and Complaint
// values reach dispatch through the nested Notification message.
const (
	TypeSubscriptionConfirmation = "SubscriptionConfirmation"
	TypeNotification             = "Notification"
	TypeUnsubscribeConfirmation  = "UnsubscribeConfirmation"
	TypeDelivery                 = "Delivery"
	TypeBounce                   = "Bounce"
	TypeComplaint                = "Complaint"
)

// discriminatorKeys lists the field names that may carry the type of
// a notification, in priority order. SNS envelopes use Type, older
// and re-wrapped shapes use eventType or notificationType.
var discriminatorKeys = []string{"Type", "eventType", "notificationType"}

// Discriminator finds the notification type value in the envelope.
// The first present key wins. A missing discriminator means the
// request is not a notification at all.
func Discriminator(e Envelope) (string, bool) {
	for _, key := range discriminatorKeys {
		if v, ok := e.String(key); ok {
			return v, true
		}
	}
	return "", false
}

// IsEnvelopeType reports whether a top-level request with this type
// value is ours to answer. The endpoint may be shared with other
// handlers in the host, so anything else is declined silently rather
// than claimed and rejected.
func IsEnvelopeType(t string) bool {
	switch t {
	case TypeNotification, TypeSubscriptionConfirmation, TypeUnsubscribeConfirmation:
		return true
	}
	return false
}
