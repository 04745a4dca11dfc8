package voice

import (
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// EventKind names the moments the shop speaks up about.
type EventKind string

const (
	KindStockLow     EventKind = "stock_low"
	KindBillQuestion EventKind = "bill_question"
	KindSaleComplete EventKind = "sale_complete"
	KindDailySummary EventKind = "daily_summary"
)

// Event is one announcement request. Only the fields the kind needs are set.
type Event struct {
	Kind        EventKind
	Language    string // "ta" or "en"
	ProductName string
	Amount      float64
	Revenue     float64
	Profit      float64
	TopProduct  string
}

// Announcer turns events into speech (or whatever the backend does with
// them). Calls are fire-and-forget: the sale never waits on the speaker.
type Announcer interface {
	Announce(event Event)
}

// Text renders the spoken phrase for the event in its language. These are
// the exact phrases the shopkeeper hears at the counter.
func (e Event) Text() string {
	tamil := e.Language == "ta"
	switch e.Kind {
	case KindStockLow:
		if tamil {
			return e.ProductName + " குறைவாக இருக்கு"
		}
		return e.ProductName + " is running low"
	case KindBillQuestion:
		if tamil {
			return "தொகை " + rupees(e.Amount) + " ரூபாய் ஆகுது. பில் வேணுமா?"
		}
		return "Amount is " + rupees(e.Amount) + " rupees. Do you want a bill?"
	case KindSaleComplete:
		if tamil {
			return "விற்பனை முடிந்தது. தொகை " + rupees(e.Amount) + " ரூபாய்."
		}
		return "Sale completed. Amount " + rupees(e.Amount) + " rupees."
	case KindDailySummary:
		if tamil {
			return fmt.Sprintf("இன்று மொத்த விற்பனை %s ரூபாய். லாபம் %s ரூபாய். அதிகம் விற்ற பொருள் %s.",
				rupees(e.Revenue), rupees(e.Profit), e.TopProduct)
		}
		return fmt.Sprintf("Today total sales %s rupees. Profit %s rupees. Top selling product %s.",
			rupees(e.Revenue), rupees(e.Profit), e.TopProduct)
	}
	return ""
}

// rupees prints an amount the way it is spoken: no trailing zeros.
func rupees(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// LogAnnouncer writes announcements to the log. Used when no voice bridge
// is configured, and in tests.
type LogAnnouncer struct {
	log *zap.Logger
}

func NewLogAnnouncer(log *zap.Logger) *LogAnnouncer {
	return &LogAnnouncer{log: log}
}

func (a *LogAnnouncer) Announce(event Event) {
	a.log.Info("announcement",
		zap.String("kind", string(event.Kind)),
		zap.String("language", event.Language),
		zap.String("text", event.Text()))
}

// WebhookAnnouncer posts announcements to an external text-to-speech bridge.
// Delivery is best effort from a goroutine; a dead speaker must never stall
// or fail a sale.
type WebhookAnnouncer struct {
	client *resty.Client
	url    string
	log    *zap.Logger
}

func NewWebhookAnnouncer(url string, log *zap.Logger) *WebhookAnnouncer {
	return &WebhookAnnouncer{
		client: resty.New(),
		url:    url,
		log:    log,
	}
}

func (a *WebhookAnnouncer) Announce(event Event) {
	payload := map[string]string{
		"kind":     string(event.Kind),
		"language": event.Language,
		"text":     event.Text(),
	}

	go func() {
		resp, err := a.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(a.url)
		if err != nil {
			a.log.Warn("voice webhook unreachable", zap.Error(err))
			return
		}
		if resp.IsError() {
			a.log.Warn("voice webhook rejected announcement",
				zap.Int("status", resp.StatusCode()))
		}
	}()
}

// New picks the webhook announcer when a bridge URL is configured, the log
// announcer otherwise.
func New(webhookURL string, log *zap.Logger) Announcer {
	if webhookURL != "" {
		return NewWebhookAnnouncer(webhookURL, log)
	}
	return NewLogAnnouncer(log)
}
