package common

import "fmt"

// Message keys used by the callback processor. The catalog below is
// the English default; hosts with their own localization layer can
// plug in a different Translator.
const (
	MsgProcessed = "PROCESSED"

	KeySubscribeError      = "callback.subscribe.error"
	KeyNotificationInvalid = "callback.notification.json.invalid"
	KeyUnknownType         = "callback.unknown.type"
	KeyJSONInvalid         = "callback.json.invalid"
	KeyInvalidPayload      = "callback.invalid.payload"
)

// Translator resolves a message key into a user-facing string
type Translator interface {
	Trans(key string, args ...interface{}) string
}

var englishCatalog = map[string]string{
	KeySubscribeError:      "Error processing subscribe request",
	KeyNotificationInvalid: "Invalid json in notification message",
	KeyUnknownType:         "Unknown type of request: %v",
	KeyJSONInvalid:         "Invalid json in request body",
	KeyInvalidPayload:      "Invalid payload for this type of request",
}

// EnglishTranslator is the default Translator backed by a static catalog
type EnglishTranslator struct{}

var _ Translator = (*EnglishTranslator)(nil)

func (t *EnglishTranslator) Trans(key string, args ...interface{}) string {
	format, ok := englishCatalog[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
