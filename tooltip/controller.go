package tooltip

import (
	"context"
	"fmt"
)

// Controller decides whether its tooltip should be shown and reacts to
// interactions with it.
type Controller interface {
	// ShouldDisplayTooltip reports the metadata to show, or ok=false when
	// the tooltip should stay hidden. It is called once per subscription.
	ShouldDisplayTooltip(ctx context.Context) (md Metadata, ok bool, err error)
	// HandleTooltipInteraction persists the effect of an interaction.
	HandleTooltipInteraction(ctx context.Context, interaction Interaction) error
	// ConsumeTooltipInteraction applies the view side effect of an
	// interaction once it has been handled.
	ConsumeTooltipInteraction(interaction Interaction)
}

// ControllerProvider returns the controller responsible for a tooltip type.
type ControllerProvider interface {
	Get(t Type) (Controller, error)
}

// ProviderMap is a ControllerProvider backed by a map.
type ProviderMap map[Type]Controller

// Get implements ControllerProvider.
func (p ProviderMap) Get(t Type) (Controller, error) {
	c, ok := p[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoController, t)
	}
	return c, nil
}
