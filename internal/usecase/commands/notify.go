package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/pkg/config"
)

type EventKind string

const (
	EventNewOffer  EventKind = "new_offer"
	EventPriceDrop EventKind = "price_drop"
)

// Event is one notification-worthy observation from an update run.
type Event struct {
	Kind   EventKind
	Offer  offer.Offer
	OldPNP *decimal.Decimal // previous per-night price, drops only
	NewPNP *decimal.Decimal
	OldAmt *decimal.Decimal
	NewAmt *decimal.Decimal
}

// BuildEvents compares the pre-run records with the post-run items and emits
// one event per newly appeared journey and one per journey whose cheapest
// total fell by at least the price epsilon. A record without a cheapest price
// on either side raises no event.
func BuildEvents(before map[string]offer.Offer, after []offer.Offer) []Event {
	var events []Event
	for _, cur := range after {
		prev, known := before[cur.JourneyID]
		if !known {
			if cur.Cheapest != nil {
				events = append(events, Event{
					Kind:   EventNewOffer,
					Offer:  cur,
					NewPNP: cur.CheapestPNP(),
					NewAmt: cur.CheapestAmount(),
				})
			}
			continue
		}
		oldAmt := prev.CheapestAmount()
		newAmt := cur.CheapestAmount()
		if oldAmt == nil || newAmt == nil {
			continue
		}
		if oldAmt.Sub(*newAmt).GreaterThan(offer.PriceEpsilon) {
			events = append(events, Event{
				Kind:   EventPriceDrop,
				Offer:  cur,
				OldPNP: prev.CheapestPNP(),
				NewPNP: cur.CheapestPNP(),
				OldAmt: oldAmt,
				NewAmt: newAmt,
			})
		}
	}
	return events
}

// EventSender renders events and pushes them through a Notifier, applying the
// mute policy per event.
type EventSender struct {
	notifier Notifier
	cfg      config.NotifyConfig
	currency string
	logger   *slog.Logger
}

func NewEventSender(notifier Notifier, cfg config.NotifyConfig, currency string, logger *slog.Logger) *EventSender {
	return &EventSender{notifier: notifier, cfg: cfg, currency: currency, logger: logger}
}

// SendEvents delivers each event, pausing between messages so the transport's
// rate limit is never hit. Suppressed and failed sends are counted, not fatal.
func (s *EventSender) SendEvents(ctx context.Context, events []Event, sleep func(context.Context)) int {
	sent := 0
	for _, ev := range events {
		silent, suppressed := s.decide(ev)
		if suppressed {
			s.logger.Debug("notification suppressed", "journey", ev.Offer.JourneyID, "kind", string(ev.Kind))
			continue
		}
		if sent > 0 && sleep != nil {
			sleep(ctx)
		}
		if err := s.notifier.Send(ctx, FormatMessage(ev, s.currency), silent); err != nil {
			s.logger.Warn("notification send failed", "journey", ev.Offer.JourneyID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

// decide applies the mute policy: messages default to silent, turn loud when
// the per-night price reaches the alert threshold, and are dropped entirely
// above the notify ceiling. Both limits are inactive at zero.
func (s *EventSender) decide(ev Event) (silent, suppressed bool) {
	silent = s.cfg.DefaultSilent
	pnp := ev.NewPNP
	if pnp == nil {
		return silent, false
	}
	if s.cfg.MaxNotifyPNP > 0 && pnp.GreaterThan(decimal.NewFromFloat(s.cfg.MaxNotifyPNP)) {
		return silent, true
	}
	if s.cfg.PNPAlertThreshold > 0 && pnp.LessThanOrEqual(decimal.NewFromFloat(s.cfg.PNPAlertThreshold)) {
		silent = false
	}
	return silent, false
}

// FormatMessage renders one event as a plain-text message.
func FormatMessage(ev Event, currency string) string {
	o := ev.Offer
	var b strings.Builder

	switch ev.Kind {
	case EventNewOffer:
		b.WriteString("🆕 Neues Angebot\n")
	case EventPriceDrop:
		b.WriteString("📉 Preis gesunken\n")
	}

	fmt.Fprintf(&b, "%s (%s)\n", o.Title, o.ShipName)
	fmt.Fprintf(&b, "%d Nächte ab %s", o.Duration, o.StartDate)
	if o.FlightIncluded {
		b.WriteString(", inkl. Flug")
	}
	b.WriteString("\n")

	if o.Cheapest != nil {
		fmt.Fprintf(&b, "%s: %s %s", o.Cheapest.Name, o.Cheapest.Amount.StringFixed(2), currency)
		if pnp := o.CheapestPNP(); pnp != nil {
			fmt.Fprintf(&b, " (%s %s/Nacht p.P.)", pnp.StringFixed(2), currency)
		}
		b.WriteString("\n")
	}

	if ev.Kind == EventPriceDrop && ev.OldAmt != nil && ev.NewAmt != nil {
		fmt.Fprintf(&b, "vorher %s %s, jetzt %s %s\n",
			ev.OldAmt.StringFixed(2), currency, ev.NewAmt.StringFixed(2), currency)
	}

	if o.AbsoluteLink != "" {
		b.WriteString(o.AbsoluteLink)
	}
	return strings.TrimRight(b.String(), "\n")
}
