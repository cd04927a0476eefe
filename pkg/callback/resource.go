package callback

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

const (
	// assume there cannot be such a huge notification payloads
	kilobyte            = 1024
	megabyte            = 1024 * kilobyte
	maxCallbackBodySize = megabyte
)

// sesTransportScheme is the DSN scheme of the transport whose
// notifications this service is meant to receive
const sesTransportScheme = "ses+api"

// Response is the JSON body answered for recognized notifications
type Response struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// CallbackResource manages http requests for the SES notification
// callback and the suppression list export
type CallbackResource struct {
	APIToken  string
	MailerDSN string
	Processor *Processor
	// Next receives requests that are not ours to answer: invalid
	// json or no recognized discriminator. Defaults to a plain 404.
	Next http.Handler
}

func (cr *CallbackResource) Setup(router *http.ServeMux) {
	router.HandleFunc(common.CallbackEndpoint, cr.method("POST", cr.callback))
	router.HandleFunc(common.SuppressionsEndpoint, cr.auth(cr.suppressions))
	router.HandleFunc(common.HealthEndpoint, cr.health)
}

// auth middleware.
func (cr *CallbackResource) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pass, ok := r.BasicAuth()
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if pass != cr.APIToken {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (cr *CallbackResource) method(m string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// decline lets the host's next handler answer the request. The
// endpoint may be shared with other webhook consumers, so nothing is
// written here.
func (cr *CallbackResource) decline(w http.ResponseWriter, r *http.Request) {
	if cr.Next != nil {
		cr.Next.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

// warnForeignTransport logs when the active mailer is not the SES API
// transport. The check never blocks or suppresses processing.
func (cr *CallbackResource) warnForeignTransport() {
	if cr.MailerDSN == "" {
		return
	}
	dsn, err := url.Parse(cr.MailerDSN)
	if err != nil {
		log.Printf("Failed to parse mailer DSN. err=%v", err)
		return
	}
	if dsn.Scheme != sesTransportScheme {
		log.Printf("Processing SES notification while another transport is active. scheme=%v", dsn.Scheme)
	}
}

func (cr *CallbackResource) callback(w http.ResponseWriter, r *http.Request) {
	cr.warnForeignTransport()

	r.Body = http.MaxBytesReader(w, r.Body, maxCallbackBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Failed to read callback body. err=%v", err)
		cr.decline(w, r)
		return
	}

	payload, err := ParseEnvelope(body)
	if err != nil {
		log.Printf("Declining callback. reason=%q err=%v", common.KeyJSONInvalid, err)
		cr.decline(w, r)
		return
	}

	typ, ok := Discriminator(payload)
	if !ok {
		log.Printf("Declining callback without type discriminator")
		cr.decline(w, r)
		return
	}

	if !IsEnvelopeType(typ) {
		log.Printf("Declining callback of foreign envelope type. type=%v", typ)
		cr.decline(w, r)
		return
	}

	outcome := cr.Processor.ProcessPayload(payload, typ)

	status := http.StatusOK
	if outcome.HasError {
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Message: outcome.Message,
		Success: !outcome.HasError,
	})
}

func (cr *CallbackResource) suppressions(w http.ResponseWriter, r *http.Request) {
	suppressions, err := cr.Processor.Suppressions.Suppressions()
	if err != nil {
		log.Printf("Failed to fetch suppressions. err=%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(suppressions)
}

func (cr *CallbackResource) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
