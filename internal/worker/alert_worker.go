package worker

// alert_worker.go
// Processes low-stock jobs from QueueAlerts: a delivery decrement (or edit)
// left a stock item at or below the configured threshold, so the shop owner
// gets a heads-up email. Sends go through the mailer's circuit breaker so a
// dead SMTP server is not hammered on every delivery.

import (
	"context"
	"encoding/json"
	"fmt"

	"voltstock/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockPayload is the job envelope sent to QueueAlerts.
type LowStockPayload struct {
	StockID  string `json:"stock_id"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// AlertWorker sends low-stock notification emails.
type AlertWorker struct {
	mailer  *infra.Mailer
	breaker *infra.CircuitBreaker
	to      string
}

func NewAlertWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, alertEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, breaker: breaker, to: alertEmail}
}

// Process sends one low-stock email. A returned error sends the job to the DLQ.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("alert_worker: invalid payload: %w", err)
	}
	if w.to == "" {
		log.Warn().Msg("alert_worker: no ALERT_EMAIL configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%d left)", payload.Product, payload.Quantity)
	body := fmt.Sprintf(
		"Stock item %q (id %s) is down to %d units after the latest delivery.\nRestock it from the dashboard.",
		payload.Product, payload.StockID, payload.Quantity,
	)

	err := w.breaker.Execute(func() error {
		return w.mailer.Send(w.to, subject, body)
	})
	if err != nil {
		return fmt.Errorf("alert_worker: send: %w", err)
	}
	log.Info().Str("product", payload.Product).Int("quantity", payload.Quantity).Msg("alert_worker: low-stock alert sent")
	return nil
}
