package tooltip

import "github.com/CreativeUnicorns/receiptprefs"

// Event names recorded by the presenter.
const (
	EventTooltipShown       = "tooltip_shown"
	EventTooltipInteraction = "tooltip_interaction"
	EventTooltipError       = "tooltip_error"
)

// Event is an analytics event with flat string attributes.
type Event struct {
	Name  string
	Attrs map[string]string
}

// Analytics records presenter events.
type Analytics interface {
	Record(e Event)
}

// LogAnalytics records events through a receiptprefs.Logger.
type LogAnalytics struct {
	Logger receiptprefs.Logger
}

// Record implements Analytics.
func (a LogAnalytics) Record(e Event) {
	args := make([]any, 0, 2+2*len(e.Attrs))
	args = append(args, "event", e.Name)
	for k, v := range e.Attrs {
		args = append(args, k, v)
	}
	a.Logger.Info("Analytics event", args...)
}
