// Package checkout drives a validated draft through pricing and placement,
// and a subscription through estimate, payment and explicit verification.
package checkout

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fleet-console/internal/domain/payment"
	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/domain/subscription"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/token"
	"fleet-console/internal/usecase/shared"
	"fleet-console/internal/usecase/validation"

	"github.com/google/uuid"
)

var (
	ErrStaleResponse        = errs.New("response superseded by a newer request")
	ErrConfirmInFlight      = errs.New("confirmation already in progress")
	ErrVerifyInFlight       = errs.New("verification already in progress")
	ErrNotInitialized       = errs.New("request has not been priced")
	ErrAlreadyConfirmed     = errs.New("request already confirmed")
	ErrNoPaymentSession     = errs.New("no payment session")
	ErrSessionMismatch      = errs.New("payment reference does not match the current session")
	ErrVerificationDeclined = errs.New("payment verification declined")
	ErrClosed               = errs.New("checkout is closed")
)

const (
	keyInit     = "init"
	keyEstimate = "estimate"
	keyPayment  = "payment"
)

// Phase of a direct service request.
type Phase string

const (
	PhaseDraft       Phase = "DRAFT"
	PhaseInitialized Phase = "INITIALIZED"
	PhaseConfirmed   Phase = "CONFIRMED"
	PhaseFailed      Phase = "FAILED"
)

type Receipt struct {
	OrderID   string
	Breakdown pricing.Breakdown
}

type Orchestrator struct {
	services  shared.ServiceBackend
	subs      shared.SubscriptionBackend
	validator *validation.Validator
	logger    *slog.Logger

	seq        *token.Sequencer
	confirming atomic.Bool
	verifying  atomic.Bool

	mu          sync.Mutex
	closed      bool
	phase       Phase
	breakdown   *pricing.Breakdown
	priced      *shared.ServiceOrder // order the breakdown was computed for
	orderID     string
	lastErr     error
	estimate    *subscription.Estimate
	session     *payment.Session
	sessionPlan subscription.PlanRef
	cycle       subscription.BillingCycle
}

func NewOrchestrator(
	services shared.ServiceBackend,
	subs shared.SubscriptionBackend,
	validator *validation.Validator,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		services:  services,
		subs:      subs,
		validator: validator,
		logger:    logger,
		seq:       token.NewSequencer(),
		phase:     PhaseDraft,
	}
}

// Init prices d. It may be called again after every qualifying edit; only the
// most recent call's breakdown is kept and earlier calls get ErrStaleResponse.
func (o *Orchestrator) Init(ctx context.Context, d *request.Draft) (pricing.Breakdown, error) {
	if err := o.checkOpen(); err != nil {
		return pricing.Breakdown{}, err
	}
	if err := validation.AsError(o.validator.Validate(d)); err != nil {
		return pricing.Breakdown{}, err
	}

	order := shared.OrderFromDraft(d)
	tok := o.seq.Next(keyInit)
	bd, err := o.services.InitService(ctx, order)
	if err != nil {
		if !o.seq.IsLatest(tok) {
			return pricing.Breakdown{}, ErrStaleResponse
		}
		return pricing.Breakdown{}, errs.Wrapf(err, "init %s service", d.Kind)
	}

	var confirmed bool
	applied := o.seq.Guard(tok, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.phase == PhaseConfirmed {
			confirmed = true
			return
		}
		o.breakdown = &bd
		o.priced = &order
		o.phase = PhaseInitialized
		o.lastErr = nil
	})
	switch {
	case confirmed:
		return pricing.Breakdown{}, ErrAlreadyConfirmed
	case !applied:
		o.logger.Debug("discarded superseded breakdown", "kind", d.Kind, "gen", tok.Gen)
		return pricing.Breakdown{}, ErrStaleResponse
	}
	return bd, nil
}

// Confirm places the order for d. Only one confirmation may run at a time and
// a failure leaves the request open for correction and resubmission. A draft
// that no longer matches the priced order drops back to PhaseDraft and gets
// ErrNotInitialized.
func (o *Orchestrator) Confirm(ctx context.Context, d *request.Draft) (Receipt, error) {
	if !o.confirming.CompareAndSwap(false, true) {
		return Receipt{}, ErrConfirmInFlight
	}
	defer o.confirming.Store(false)

	o.mu.Lock()
	closed, phase := o.closed, o.phase
	o.mu.Unlock()
	switch {
	case closed:
		return Receipt{}, ErrClosed
	case phase == PhaseConfirmed:
		return Receipt{}, ErrAlreadyConfirmed
	case phase == PhaseDraft:
		return Receipt{}, ErrNotInitialized
	}
	if err := validation.AsError(o.validator.Validate(d)); err != nil {
		return Receipt{}, err
	}

	order := shared.OrderFromDraft(d)
	o.mu.Lock()
	stale := o.discardStalePricingLocked(order)
	o.mu.Unlock()
	if stale {
		return Receipt{}, ErrNotInitialized
	}

	// An init still in flight must not replace the breakdown of a placed order.
	o.seq.Invalidate(keyInit)

	order.IdempotencyKey = uuid.New()
	placed, err := o.services.PlaceService(ctx, order)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		err = errs.Mark(errs.Wrapf(err, "place %s service", d.Kind), errs.ErrFatalSubmission)
		o.phase = PhaseFailed
		o.lastErr = err
		o.logger.Warn("service request rejected", "kind", d.Kind, "idempotency_key", order.IdempotencyKey, "error", err)
		return Receipt{}, err
	}

	o.phase = PhaseConfirmed
	o.orderID = placed.OrderID
	o.lastErr = nil
	if placed.Breakdown != nil {
		o.breakdown = placed.Breakdown
	}
	receipt := Receipt{OrderID: placed.OrderID}
	if o.breakdown != nil {
		receipt.Breakdown = *o.breakdown
	}
	o.logger.Info("service request placed", "kind", d.Kind, "order_id", placed.OrderID)
	return receipt, nil
}

// DiscardStalePricing drops the breakdown when d has changed since it was
// priced, returning the request to PhaseDraft. It reports whether anything was
// dropped.
func (o *Orchestrator) DiscardStalePricing(d *request.Draft) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.discardStalePricingLocked(shared.OrderFromDraft(d))
}

func (o *Orchestrator) discardStalePricingLocked(order shared.ServiceOrder) bool {
	if o.phase != PhaseInitialized && o.phase != PhaseFailed {
		return false
	}
	if o.priced != nil && o.priced.SamePricing(order) {
		return false
	}
	o.logger.Debug("draft changed since pricing, breakdown discarded", "kind", order.Kind)
	o.phase = PhaseDraft
	o.breakdown = nil
	o.priced = nil
	o.lastErr = nil
	return true
}

// Estimate prices a subscription. It has no side effects on the backend.
func (o *Orchestrator) Estimate(ctx context.Context, in validation.SubscriptionInput) (subscription.Estimate, error) {
	if err := o.checkOpen(); err != nil {
		return subscription.Estimate{}, err
	}
	in.StartsAt = nil
	if err := validation.AsError(o.validator.ValidateSubscription(in)); err != nil {
		return subscription.Estimate{}, err
	}

	tok := o.seq.Next(keyEstimate)
	est, err := o.subs.EstimateSubscription(ctx, shared.EstimateInput{
		AssetCount:   in.AssetCount,
		BillingCycle: in.BillingCycle,
		Category:     in.Category,
	})
	if err != nil {
		if !o.seq.IsLatest(tok) {
			return subscription.Estimate{}, ErrStaleResponse
		}
		return subscription.Estimate{}, errs.Wrap(err, "estimate subscription")
	}

	applied := o.seq.Guard(tok, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.estimate = &est
	})
	if !applied {
		return subscription.Estimate{}, ErrStaleResponse
	}
	return est, nil
}

// InitPayment opens a payment session for plan. Any earlier session is failed
// before the backend is asked for a new one, so its reference can no longer be
// verified even when the new init fails.
func (o *Orchestrator) InitPayment(ctx context.Context, plan subscription.PlanRef, cycle subscription.BillingCycle, startsAt time.Time) (payment.Snapshot, error) {
	if err := o.checkOpen(); err != nil {
		return payment.Snapshot{}, err
	}
	if !plan.HasPlan() && plan.Estimate == nil {
		return payment.Snapshot{}, errs.Mark(subscription.ErrEmptyPlanRef, errs.ErrValidation)
	}
	if err := validation.AsError(o.validator.ValidatePaymentInit(cycle, startsAt)); err != nil {
		return payment.Snapshot{}, err
	}

	o.mu.Lock()
	o.failSessionLocked()
	o.mu.Unlock()

	tok := o.seq.Next(keyPayment)
	auth, err := o.subs.InitAssignment(ctx, shared.AssignmentInit{
		Plan:         plan,
		BillingCycle: cycle,
		StartsAt:     startsAt,
	})
	if err != nil {
		if !o.seq.IsLatest(tok) {
			return payment.Snapshot{}, ErrStaleResponse
		}
		return payment.Snapshot{}, errs.Mark(errs.Wrap(err, "init subscription payment"), errs.ErrPayment)
	}

	sess, err := payment.NewSession(auth.Reference, auth.AuthorizationURL)
	if err != nil {
		return payment.Snapshot{}, errs.Mark(errs.Wrap(err, "init subscription payment"), errs.ErrPayment)
	}
	if err := sess.TransitionTo(payment.PhaseAwaitingUserAction); err != nil {
		return payment.Snapshot{}, err
	}

	applied := o.seq.Guard(tok, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.failSessionLocked()
		o.session = sess
		o.sessionPlan = plan
		o.cycle = cycle
	})
	if !applied {
		return payment.Snapshot{}, ErrStaleResponse
	}
	o.logger.Info("payment session opened", "reference", sess.Reference())
	return sess.Snapshot(), nil
}

// Verify confirms with the backend that the payment for reference went
// through. reference must belong to the current session. A failed
// verification re-opens the session for another attempt.
func (o *Orchestrator) Verify(ctx context.Context, reference, planID string, startDate time.Time) (payment.Snapshot, error) {
	if !o.verifying.CompareAndSwap(false, true) {
		return payment.Snapshot{}, ErrVerifyInFlight
	}
	defer o.verifying.Store(false)

	o.mu.Lock()
	sess := o.session
	switch {
	case o.closed:
		o.mu.Unlock()
		return payment.Snapshot{}, ErrClosed
	case sess == nil:
		o.mu.Unlock()
		return payment.Snapshot{}, errs.Mark(ErrNoPaymentSession, errs.ErrPayment)
	case !sess.Matches(reference) || sess.Phase() == payment.PhaseFailed:
		o.mu.Unlock()
		o.logger.Warn("verify rejected for superseded reference", "reference", reference, "current", sess.Reference())
		return payment.Snapshot{}, errs.Mark(ErrSessionMismatch, errs.ErrPayment)
	}
	if err := sess.TransitionTo(payment.PhaseVerifying); err != nil {
		o.mu.Unlock()
		return payment.Snapshot{}, errs.Mark(err, errs.ErrPayment)
	}
	if strings.TrimSpace(planID) == "" {
		planID = o.sessionPlan.PlanID
	}
	cycle := o.cycle
	o.mu.Unlock()

	ok, err := o.subs.VerifyAssignment(ctx, shared.AssignmentVerify{
		PlanID:       planID,
		PaymentRef:   sess.Reference(),
		StartDate:    startDate,
		BillingCycle: cycle,
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.closed:
		return payment.Snapshot{}, ErrClosed
	case o.session != sess || sess.Phase() == payment.PhaseFailed:
		return payment.Snapshot{}, errs.Mark(ErrSessionMismatch, errs.ErrPayment)
	}
	if err == nil && !ok {
		err = ErrVerificationDeclined
	}
	if err != nil {
		if tErr := sess.TransitionTo(payment.PhaseAwaitingUserAction); tErr != nil {
			return sess.Snapshot(), errs.Mark(tErr, errs.ErrPayment)
		}
		o.logger.Warn("payment verification failed", "reference", sess.Reference(), "error", err)
		return sess.Snapshot(), errs.Mark(errs.Wrap(err, "verify subscription payment"), errs.ErrPayment)
	}
	if err := sess.TransitionTo(payment.PhaseVerified); err != nil {
		return sess.Snapshot(), errs.Mark(err, errs.ErrPayment)
	}
	o.logger.Info("payment verified", "reference", sess.Reference())
	return sess.Snapshot(), nil
}

// Close discards the checkout. Responses still in flight are dropped and an
// open payment session is failed.
func (o *Orchestrator) Close() {
	for _, k := range []string{keyInit, keyEstimate, keyPayment} {
		o.seq.Invalidate(k)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.failSessionLocked()
}

func (o *Orchestrator) failSessionLocked() {
	if o.session == nil || o.session.Phase().IsTerminal() {
		return
	}
	if err := o.session.TransitionTo(payment.PhaseFailed); err != nil {
		o.logger.Error("could not fail payment session", "reference", o.session.Reference(), "error", err)
	}
}

func (o *Orchestrator) checkOpen() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return ErrClosed
	}
	return nil
}

func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) Breakdown() (pricing.Breakdown, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.breakdown == nil {
		return pricing.Breakdown{}, false
	}
	return *o.breakdown, true
}

func (o *Orchestrator) OrderID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.orderID
}

// LastError is the error of the most recent failed confirmation.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func (o *Orchestrator) LastEstimate() (subscription.Estimate, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.estimate == nil {
		return subscription.Estimate{}, false
	}
	return *o.estimate, true
}

func (o *Orchestrator) Session() (payment.Snapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return payment.Snapshot{}, false
	}
	return o.session.Snapshot(), true
}
