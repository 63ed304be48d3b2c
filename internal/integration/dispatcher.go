package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const KindInviteWebhook = "invite_webhook"

// Dispatcher delivers outbound webhooks. Delivery is fire-and-forget:
// failures are logged and counted but never surfaced to the caller.
type Dispatcher struct {
	repo   Repository
	client *http.Client
}

func NewDispatcher(repo Repository) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyInviteCreated posts the invite payload to the configured workflow
// automation endpoint. Satisfies the invite package's notifier interface.
func (d *Dispatcher) NotifyInviteCreated(tenantID, senderID, listingID uint) {
	payload := map[string]interface{}{
		"tenant_id":  tenantID,
		"sender_id":  senderID,
		"listing_id": listingID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	go d.dispatch(KindInviteWebhook, "invite.created", payload)
}

func (d *Dispatcher) dispatch(kind, event string, payload map[string]interface{}) {
	target, err := d.repo.FindByKind(kind)
	if err != nil {
		// no active integration registered, nothing to deliver
		return
	}

	deliveryID := uuid.New().String()
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warn("webhook payload marshal failed")
		return
	}

	entry := log.WithFields(log.Fields{
		"integration": target.Name,
		"event":       event,
		"delivery_id": deliveryID,
	})

	req, err := http.NewRequest(http.MethodPost, target.TargetURL, bytes.NewReader(body))
	if err != nil {
		entry.WithError(err).Warn("webhook request build failed")
		d.record(target.ID, deliveryID, event, body, 0, false, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", deliveryID)

	resp, err := d.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("webhook delivery failed")
		d.record(target.ID, deliveryID, event, body, 0, false, err.Error())
		return
	}
	defer resp.Body.Close()

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if success {
		entry.WithField("status", resp.StatusCode).Info("webhook delivered")
	} else {
		entry.WithField("status", resp.StatusCode).Warn("webhook rejected by endpoint")
	}
	d.record(target.ID, deliveryID, event, body, resp.StatusCode, success, "")
}

func (d *Dispatcher) record(integrationID uint, deliveryID, event string, payload []byte, statusCode int, success bool, errMsg string) {
	if err := d.repo.LogDelivery(&IntegrationAuditLog{
		IntegrationID: integrationID,
		DeliveryID:    deliveryID,
		Event:         event,
		Payload:       datatypes.JSON(payload),
		StatusCode:    statusCode,
		Success:       success,
		Error:         errMsg,
	}); err != nil {
		log.WithError(err).Warn("failed to record webhook delivery")
	}
	if err := d.repo.BumpUsage(integrationID, time.Now().UTC(), success); err != nil {
		log.WithError(err).Warn("failed to bump integration usage")
	}
}
