package callback

import "encoding/json"

// Envelope is the untyped tree decoded from a notification body.
// The known payload shapes share a container but diverge per type,
// so the processor reads optional paths instead of a fixed schema.
// Missing keys are expected, never an error.
type Envelope map[string]interface{}

// ParseEnvelope decodes a raw body into an Envelope. Any malformed
// input fails here and nowhere else downstream.
func ParseEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	err := json.Unmarshal(data, &e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// String returns the string value at key, if present and a string
func (e Envelope) String(key string) (string, bool) {
	v, ok := e[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the string value at key or a default
func (e Envelope) StringOr(key, def string) string {
	if s, ok := e.String(key); ok && s != "" {
		return s
	}
	return def
}

// Map returns the nested object at key, if present
func (e Envelope) Map(key string) (Envelope, bool) {
	v, ok := e[key]
	if !ok {
		return nil, false
	}
	return asEnvelope(v)
}

// List returns the array at key, if present
func (e Envelope) List(key string) ([]interface{}, bool) {
	v, ok := e[key]
	if !ok {
		return nil, false
	}
	l, ok := v.([]interface{})
	return l, ok
}

func asEnvelope(v interface{}) (Envelope, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Envelope(m), true
}
