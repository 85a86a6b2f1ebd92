package notifier

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// SMSNotifier delivers reservation messages over Twilio SMS.
type SMSNotifier struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

func NewSMSNotifier(accountSID, authToken, from string, log *zap.Logger) *SMSNotifier {
	return &SMSNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  log.With(zap.String("notifier", "sms")),
	}
}

func (n *SMSNotifier) Notify(ctx context.Context, kind Kind, snapshot Snapshot) error {
	body := buildMessage(kind, snapshot)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(snapshot.Phone)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		n.log.Warn("Failed to send SMS",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("code", snapshot.Code),
		)
		return fmt.Errorf("send SMS for %s: %w", snapshot.Code, err)
	}

	if resp.Sid != nil {
		n.log.Info("SMS sent",
			zap.String("kind", string(kind)),
			zap.String("code", snapshot.Code),
			zap.String("sid", *resp.Sid),
		)
	}

	return nil
}

func buildMessage(kind Kind, s Snapshot) string {
	slot := fmt.Sprintf("%s %s", s.Date, s.TimeSlot)

	switch kind {
	case KindPending:
		return fmt.Sprintf("Your sauna booking %s for %s is held for 20 minutes. Confirm here: %s",
			s.Code, slot, s.Link)
	case KindConfirmed:
		return fmt.Sprintf("Booking %s confirmed: %s, %d guests, total %d yen. See you soon!",
			s.Code, slot, s.GuestCount, s.TotalPrice)
	case KindExpired:
		return fmt.Sprintf("Booking %s for %s expired before confirmation and has been released.",
			s.Code, slot)
	case KindUpdated:
		return fmt.Sprintf("Booking %s was updated: %s, %d guests, total %d yen.",
			s.Code, slot, s.GuestCount, s.TotalPrice)
	case KindLookup:
		return fmt.Sprintf("Your reservation %s (%s): %s", s.Code, slot, s.Link)
	default:
		return fmt.Sprintf("Update for booking %s (%s).", s.Code, slot)
	}
}
