package worker

// email_worker.go
// Processes email jobs from QueueEmail: low-stock alerts, due reminders and
// invoice copies. Delivery is at-most-once: a failed send goes to the DLQ
// for inspection and is never retried.

import (
	"context"
	"encoding/json"
	"errors"

	"billtrack/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	HTML       string `json:"html"`
	Attachment string `json:"attachment,omitempty"` // local path, e.g. invoice PDF
}

// EmailWorker sends emails through the circuit-breaker-guarded SMTP mailer.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email. Per-send failures are isolated: the returned
// error drives DLQ placement only, subsequent jobs are unaffected.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errors.New("email_worker: invalid payload")
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient, skipping")
		return nil
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.HTML, payload.Attachment); err != nil {
		return err
	}
	log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: sent")
	return nil
}
