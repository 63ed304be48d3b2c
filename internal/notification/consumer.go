package notification

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

// StartKafkaConsumer runs the platform-event consumer loop until ctx is
// cancelled. Each event becomes an in-app notification (and email) for its
// recipient. Intended to run as a goroutine from main.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	reader := utils.NewEventReader(cfg, "notifications")
	defer reader.Close()

	log.Info("notification consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.WithError(err).Warn("kafka read failed")
			continue
		}

		var ev utils.PlatformEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.WithError(err).Warn("skipping malformed platform event")
			continue
		}
		if ev.UserID == 0 {
			continue
		}

		title, body := renderEvent(ev)
		if title == "" {
			continue
		}

		if err := svc.Notify(ev.UserID, ev.Type, title, body, ev.Payload); err != nil {
			log.WithError(err).WithField("event", ev.Type).Warn("failed to store notification")
		}
	}
}

// renderEvent maps a platform event to user-facing copy. Unknown event types
// produce nothing.
func renderEvent(ev utils.PlatformEvent) (title, body string) {
	switch ev.Type {
	case utils.EventInviteSent:
		return "New invitation",
			"You have a new invitation. Open your dashboard to respond."
	case utils.EventInviteAnswered:
		status, _ := ev.Payload["status"].(string)
		return "Invitation " + status,
			fmt.Sprintf("Your invitation was %s.", status)
	case utils.EventProfileVerified:
		return "Profile verified",
			"Your profile has been verified. You now have access to verified features."
	case utils.EventShowingUpdated:
		status, _ := ev.Payload["status"].(string)
		return "Showing " + status,
			fmt.Sprintf("A property showing was updated to %s.", status)
	}
	return "", ""
}
