// Package tooltip selects the highest priority tooltip a view supports and
// routes the user's interactions with it to the tooltip's controller.
package tooltip

import "fmt"

// Type identifies a tooltip variant. Lower values have higher priority.
type Type int

// Tooltip variants in priority order.
const (
	RateThisApp Type = iota
	PrivacyPolicy
	AutomaticBackupRecoveryHint
	FirstReportHint
)

var typeNames = map[Type]string{
	RateThisApp:                 "RateThisApp",
	PrivacyPolicy:               "PrivacyPolicy",
	AutomaticBackupRecoveryHint: "AutomaticBackupRecoveryHint",
	FirstReportHint:             "FirstReportHint",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Priority returns the ordering key of t; smaller wins.
func (t Type) Priority() int { return int(t) }

// Metadata describes a tooltip to display.
type Metadata struct {
	Type Type
	Text string
}

// Interaction is a user action on the displayed tooltip.
type Interaction int

const (
	TooltipClick Interaction = iota
	YesButtonClick
	NoButtonClick
	CloseCancelButtonClick
)

func (i Interaction) String() string {
	switch i {
	case TooltipClick:
		return "TooltipClick"
	case YesButtonClick:
		return "YesButtonClick"
	case NoButtonClick:
		return "NoButtonClick"
	case CloseCancelButtonClick:
		return "CloseCancelButtonClick"
	}
	return fmt.Sprintf("Interaction(%d)", int(i))
}
