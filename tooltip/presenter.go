package tooltip

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/CreativeUnicorns/receiptprefs"
)

var (
	// ErrAlreadySubscribed is returned by Subscribe on a running presenter.
	ErrAlreadySubscribed = errors.New("tooltip presenter already subscribed")
	// ErrNoController is returned by a ControllerProvider without a
	// controller for the requested type.
	ErrNoController = errors.New("no tooltip controller")
)

// Presenter shows at most one tooltip on a View and routes click events to
// the controller of the displayed tooltip.
type Presenter struct {
	view      View
	provider  ControllerProvider
	analytics Analytics
	logger    receiptprefs.Logger

	mu  sync.Mutex
	sub *subscription
}

// subscription is one Subscribe/Unsubscribe cycle. done is closed when its
// routing goroutine exits.
type subscription struct {
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	displayed *displayedTooltip
}

type displayedTooltip struct {
	metadata   Metadata
	controller Controller
}

type candidate struct {
	metadata   Metadata
	controller Controller
}

// NewPresenter creates a Presenter. analytics and logger may be nil.
func NewPresenter(view View, provider ControllerProvider, analytics Analytics, logger receiptprefs.Logger) *Presenter {
	if logger == nil {
		logger = receiptprefs.NopLogger()
	}
	return &Presenter{
		view:      view,
		provider:  provider,
		analytics: analytics,
		logger:    logger,
	}
}

// Subscribe evaluates every supported tooltip, displays the highest priority
// one that wants to be shown, and starts routing clicks. It returns once the
// selection is made; routing continues until ctx is done or Unsubscribe is
// called. Once routing has stopped the presenter can be subscribed again.
func (p *Presenter) Subscribe(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active() {
		return ErrAlreadySubscribed
	}
	if p.sub != nil {
		// The previous subscription's context ended; its loop is exiting.
		<-p.sub.done
		p.sub = nil
	}

	winner, err := p.selectTooltip(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{ctx: loopCtx, cancel: cancel, done: make(chan struct{})}
	if winner != nil {
		sub.displayed = &displayedTooltip{metadata: winner.metadata, controller: winner.controller}
		p.view.Display(winner.metadata)
		p.logger.Debug("Displaying tooltip", "type", winner.metadata.Type.String())
		p.record(EventTooltipShown, map[string]string{"type": winner.metadata.Type.String()})
	}

	p.sub = sub
	go p.loop(loopCtx, sub)
	return nil
}

// Unsubscribe stops routing and waits for the routing goroutine to exit.
// It is safe to call on a presenter that is not subscribed.
func (p *Presenter) Unsubscribe() {
	p.mu.Lock()
	sub := p.sub
	p.sub = nil
	p.mu.Unlock()

	if sub == nil {
		return
	}
	sub.cancel()
	<-sub.done
}

// Displayed returns the metadata of the displayed tooltip while routing is
// active.
func (p *Presenter) Displayed() (Metadata, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active() || p.sub.displayed == nil {
		return Metadata{}, false
	}
	return p.sub.displayed.metadata, true
}

// active reports whether a subscription is routing. A subscription whose
// context has ended counts as finished. p.mu must be held.
func (p *Presenter) active() bool {
	return p.sub != nil && p.sub.ctx.Err() == nil
}

// selectTooltip returns the eligible candidate with the lowest priority
// value. A failing provider or predicate makes its tooltip ineligible; only
// the end of ctx fails the selection.
func (p *Presenter) selectTooltip(ctx context.Context) (*candidate, error) {
	types := p.view.SupportedTooltips()
	results := make([]*candidate, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		i, t := i, t
		g.Go(func() error {
			controller, err := p.provider.Get(t)
			if err != nil {
				p.fail(t, "provider", err)
				return nil
			}
			md, ok, err := controller.ShouldDisplayTooltip(gctx)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				p.fail(t, "should_display", err)
				return nil
			}
			if ok {
				results[i] = &candidate{metadata: md, controller: controller}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var winner *candidate
	for _, c := range results {
		if c == nil {
			continue
		}
		if winner == nil || c.metadata.Type.Priority() < winner.metadata.Type.Priority() {
			winner = c
		}
	}
	return winner, nil
}

func (p *Presenter) loop(ctx context.Context, sub *subscription) {
	defer close(sub.done)
	defer sub.cancel()

	tooltipClicks := p.view.TooltipClicks()
	yesClicks := p.view.YesButtonClicks()
	noClicks := p.view.NoButtonClicks()
	cancelClicks := p.view.CancelButtonClicks()
	closeClicks := p.view.CloseIconClicks()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-tooltipClicks:
			if !ok {
				tooltipClicks = nil
				continue
			}
			p.route(ctx, sub, TooltipClick)
		case _, ok := <-yesClicks:
			if !ok {
				yesClicks = nil
				continue
			}
			p.route(ctx, sub, YesButtonClick)
		case _, ok := <-noClicks:
			if !ok {
				noClicks = nil
				continue
			}
			p.route(ctx, sub, NoButtonClick)
		case _, ok := <-cancelClicks:
			if !ok {
				cancelClicks = nil
				continue
			}
			p.route(ctx, sub, CloseCancelButtonClick)
		case _, ok := <-closeClicks:
			if !ok {
				closeClicks = nil
				continue
			}
			p.route(ctx, sub, CloseCancelButtonClick)
		}
	}
}

func (p *Presenter) route(ctx context.Context, sub *subscription, interaction Interaction) {
	displayed := sub.displayed
	if displayed == nil {
		p.logger.Debug("Dropping tooltip interaction, nothing displayed", "interaction", interaction.String())
		return
	}

	t := displayed.metadata.Type
	if err := displayed.controller.HandleTooltipInteraction(ctx, interaction); err != nil {
		p.fail(t, "handle_interaction", err)
		return
	}
	displayed.controller.ConsumeTooltipInteraction(interaction)
	p.record(EventTooltipInteraction, map[string]string{"type": t.String(), "interaction": interaction.String()})
}

func (p *Presenter) fail(t Type, stage string, err error) {
	p.logger.Error("Tooltip controller failed", "type", t.String(), "stage", stage, "error", err)
	p.record(EventTooltipError, map[string]string{"type": t.String(), "stage": stage, "error": err.Error()})
}

func (p *Presenter) record(name string, attrs map[string]string) {
	if p.analytics != nil {
		p.analytics.Record(Event{Name: name, Attrs: attrs})
	}
}
