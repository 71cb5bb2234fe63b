package tooltip

// View is the boundary to the screen that hosts tooltips. The click
// channels deliver one value per click; a closed channel stops delivering.
type View interface {
	// SupportedTooltips lists the tooltips this view can show.
	SupportedTooltips() []Type
	// Display shows md.
	Display(md Metadata)

	TooltipClicks() <-chan struct{}
	YesButtonClicks() <-chan struct{}
	NoButtonClicks() <-chan struct{}
	CancelButtonClicks() <-chan struct{}
	CloseIconClicks() <-chan struct{}
}
