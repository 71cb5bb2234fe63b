package tooltip

import (
	"context"
	"fmt"

	"github.com/CreativeUnicorns/receiptprefs"
)

// CategoryTooltips groups tooltip dismissal flags.
const CategoryTooltips = "Tooltips"

var (
	_ Controller         = (*DismissibleController)(nil)
	_ ControllerProvider = ProviderMap(nil)
	_ FlagStore          = (*receiptprefs.UserPreferences)(nil)
)

// FlagStore reads and writes the dismissal flag.
// *receiptprefs.UserPreferences implements it.
type FlagStore interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// DismissalDefinition returns the bool preference backing a
// DismissibleController. It must be defined on the Manager before use.
func DismissalDefinition(key string) receiptprefs.PreferenceDefinition {
	return receiptprefs.PreferenceDefinition{
		Key:          key,
		Type:         receiptprefs.BoolType,
		DefaultValue: false,
		Category:     CategoryTooltips,
	}
}

// DismissibleController shows its metadata until the user answers it with
// yes, no or close. A tooltip click alone does not dismiss it.
type DismissibleController struct {
	metadata Metadata
	key      string
	store    FlagStore
	consume  func(Interaction)
}

// NewDismissibleController returns a controller for md whose dismissal is
// persisted under key in store. consume, if set, is called for every handled
// interaction.
func NewDismissibleController(md Metadata, key string, store FlagStore, consume func(Interaction)) *DismissibleController {
	return &DismissibleController{metadata: md, key: key, store: store, consume: consume}
}

// ShouldDisplayTooltip implements Controller.
func (c *DismissibleController) ShouldDisplayTooltip(ctx context.Context) (Metadata, bool, error) {
	dismissed, err := c.Dismissed(ctx)
	if err != nil {
		return Metadata{}, false, err
	}
	if dismissed {
		return Metadata{}, false, nil
	}
	return c.metadata, true, nil
}

// HandleTooltipInteraction implements Controller.
func (c *DismissibleController) HandleTooltipInteraction(ctx context.Context, interaction Interaction) error {
	switch interaction {
	case YesButtonClick, NoButtonClick, CloseCancelButtonClick:
		if err := c.store.Set(ctx, c.key, true); err != nil {
			return fmt.Errorf("dismiss %s: %w", c.metadata.Type, err)
		}
	}
	return nil
}

// ConsumeTooltipInteraction implements Controller.
func (c *DismissibleController) ConsumeTooltipInteraction(interaction Interaction) {
	if c.consume != nil {
		c.consume(interaction)
	}
}

// Dismissed reports whether the tooltip has been answered.
func (c *DismissibleController) Dismissed(ctx context.Context) (bool, error) {
	v, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", c.key, err)
	}
	dismissed, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T", receiptprefs.ErrInvalidType, c.key, v)
	}
	return dismissed, nil
}
