package purchase

import (
	"context"
	"time"

	"abod-card-app/internal/model"
	"abod-card-app/internal/session"
	"abod-card-app/internal/shopapi"
	"abod-card-app/internal/ui"
)

// scriptedPrompter returns canned answers in order. A nil entry dismisses
// the prompt.
type scriptedPrompter struct {
	answers []*string
	calls   int
}

func answer(s string) *string { return &s }

func (p *scriptedPrompter) Prompt(spec ui.PromptSpec) (string, bool) {
	if p.calls >= len(p.answers) {
		return "", false
	}
	a := p.answers[p.calls]
	p.calls++
	if a == nil {
		return "", false
	}
	return *a, true
}

// blockingPrompter parks until released, to hold a collection open.
type blockingPrompter struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingPrompter() *blockingPrompter {
	return &blockingPrompter{started: make(chan struct{}), release: make(chan struct{})}
}

func (p *blockingPrompter) Prompt(spec ui.PromptSpec) (string, bool) {
	close(p.started)
	<-p.release
	return "", false
}

// recordingNotifier captures notifications.
type recordingNotifier struct {
	kinds    []ui.NotificationKind
	messages []string
}

func (n *recordingNotifier) Notify(kind ui.NotificationKind, message string) {
	n.kinds = append(n.kinds, kind)
	n.messages = append(n.messages, message)
}

// recordingNavigator captures navigation hints without waiting.
type recordingNavigator struct {
	targets []string
	delays  []time.Duration
}

func (n *recordingNavigator) NavigateAfter(target string, delay time.Duration) {
	n.targets = append(n.targets, target)
	n.delays = append(n.delays, delay)
}

// staticConfirmer always answers the same way.
type staticConfirmer struct {
	answer bool
	asked  []string
}

func (c *staticConfirmer) Confirm(summary string) bool {
	c.asked = append(c.asked, summary)
	return c.answer
}

// fakeSubmitter records requests and returns a scripted response.
type fakeSubmitter struct {
	requests []shopapi.PurchaseRequest
	result   *shopapi.PurchaseResult
	err      error
	delay    time.Duration
}

func (s *fakeSubmitter) Purchase(ctx context.Context, req shopapi.PurchaseRequest) (*shopapi.PurchaseResult, error) {
	s.requests = append(s.requests, req)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// balanceHydrator hydrates a platform session with a fixed balance.
type balanceHydrator struct {
	telegramID int64
	balance    float64
	orders     []model.Order
}

func (h balanceHydrator) Users(ctx context.Context) ([]shopapi.User, error) {
	return []shopapi.User{{TelegramID: h.telegramID, Balance: h.balance}}, nil
}

func (h balanceHydrator) Orders(ctx context.Context) ([]model.Order, error) {
	return h.orders, nil
}

// platformSession builds a hydrated platform session for tests.
func platformSession(telegramID int64, balance float64) *session.Session {
	sess := session.New(model.NewPlatformIdentity(telegramID))
	_ = sess.Hydrate(context.Background(), balanceHydrator{telegramID: telegramID, balance: balance})
	return sess
}

// guestSession builds a guest session.
func guestSession() *session.Session {
	return session.New(model.NewGuestIdentity(model.GuestBuyer{
		GuestID:   "guest_1700000000000_abcd1234",
		FirstName: "Sara",
		Phone:     "+967 700 000 000",
	}))
}

// testVariant builds a variant with the given price in dollars.
func testVariant(price float64, delivery model.DeliveryMechanism) model.CatalogVariant {
	return model.CatalogVariant{
		ID:        "cat-1",
		ProductID: "prod-1",
		Name:      "Gold Package",
		Price:     model.CentsFromDollars(price),
		Delivery:  delivery,
	}
}

// flowEnv bundles a Flow with its recording collaborators.
type flowEnv struct {
	flow      *Flow
	prompter  *scriptedPrompter
	notifier  *recordingNotifier
	navigator *recordingNavigator
	confirmer *staticConfirmer
	submitter *fakeSubmitter
}

func newFlowEnv(answers []*string, confirm bool, submitter *fakeSubmitter) *flowEnv {
	env := &flowEnv{
		prompter:  &scriptedPrompter{answers: answers},
		notifier:  &recordingNotifier{},
		navigator: &recordingNavigator{},
		confirmer: &staticConfirmer{answer: confirm},
		submitter: submitter,
	}
	env.flow = NewFlow(
		submitter,
		NewDialog(env.prompter, env.notifier),
		NewGate(env.navigator, 3*time.Second),
		env.confirmer,
		env.notifier,
		env.navigator,
		Config{
			SupportPhone:  "967783380906",
			DefaultWindow: "10-30 minutes",
			SubmitTimeout: time.Second,
			NavigateDelay: 3 * time.Second,
		},
	)
	return env
}
