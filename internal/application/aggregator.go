package application

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/heihealth-cli/internal/domain"
	"github.com/bnema/heihealth-cli/internal/ports"
)

// Aggregator loads the six clinical collections of one patient as a unit. Only the most
// recently started load may write its result back; older loads are cancelled and discarded.
type Aggregator struct {
	source ports.ClinicalSource
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      domain.LoadState
	observers  []func(domain.LoadState)
}

func NewAggregator(source ports.ClinicalSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{
		source: source,
		logger: logger,
		state:  domain.IdleState(),
	}
}

// OnChange registers fn to receive every state transition. fn runs on the loading goroutine.
func (a *Aggregator) OnChange(fn func(domain.LoadState)) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.observers = append(a.observers, fn)
	a.mu.Unlock()
}

func (a *Aggregator) State() domain.LoadState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Reset cancels any in-flight load and returns the state to idle.
func (a *Aggregator) Reset() {
	a.reset().deliver()
}

func (a *Aggregator) reset() notification {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.generation++
	a.state = domain.IdleState()
	return notification{observers: a.snapshotObserversLocked(), state: a.state}
}

func (a *Aggregator) Load(ctx context.Context, id domain.PatientID) (domain.ClinicalBundle, error) {
	if strings.TrimSpace(string(id)) == "" {
		return domain.ClinicalBundle{}, domain.ErrEmptyPatientID
	}

	ticket, pending := a.begin(ctx, id)
	pending.deliver()
	return a.run(ticket)
}

type loadTicket struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	patientID  domain.PatientID
}

// notification is a state change whose observers have not been called yet. Callers holding
// their own locks deliver it after releasing them.
type notification struct {
	observers []func(domain.LoadState)
	state     domain.LoadState
}

func (n notification) deliver() {
	notify(n.observers, n.state)
}

// begin supersedes the current load and moves the state to Loading(id).
func (a *Aggregator) begin(ctx context.Context, id domain.PatientID) (loadTicket, notification) {
	loadCtx, cancel := context.WithCancel(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}
	a.generation++
	a.cancel = cancel
	a.state = domain.LoadingState(id)

	ticket := loadTicket{ctx: loadCtx, cancel: cancel, generation: a.generation, patientID: id}
	return ticket, notification{observers: a.snapshotObserversLocked(), state: a.state}
}

func (a *Aggregator) run(ticket loadTicket) (domain.ClinicalBundle, error) {
	defer ticket.cancel()

	logger := a.logger.With(zap.String("patient_id", string(ticket.patientID)), zap.Uint64("generation", ticket.generation))
	logger.Debug("clinical load started")

	bundle, err := a.fetchAll(ticket.ctx, ticket.patientID)

	a.mu.Lock()
	if ticket.generation != a.generation {
		a.mu.Unlock()
		logger.Debug("clinical load superseded")
		return domain.ClinicalBundle{}, domain.ErrSuperseded
	}
	a.cancel = nil
	var next domain.LoadState
	if err != nil {
		next = domain.FailedState(ticket.patientID, err.Error())
	} else {
		next = domain.LoadedState(ticket.patientID, bundle)
	}
	a.state = next
	observers := a.snapshotObserversLocked()
	a.mu.Unlock()

	notify(observers, next)

	if err != nil {
		logger.Warn("clinical load failed", zap.Error(err))
		return domain.ClinicalBundle{}, err
	}
	logger.Debug("clinical load finished")
	return bundle, nil
}

func (a *Aggregator) fetchAll(ctx context.Context, id domain.PatientID) (domain.ClinicalBundle, error) {
	var bundle domain.ClinicalBundle
	g, gctx := errgroup.WithContext(ctx)

	fetch(g, gctx, id, ResourcePatient, a.source.Patient, &bundle.Patient)
	fetch(g, gctx, id, ResourceCondition, a.source.Conditions, &bundle.Conditions)
	fetch(g, gctx, id, ResourceObservation, a.source.Observations, &bundle.Observations)
	fetch(g, gctx, id, ResourceImmunization, a.source.Immunizations, &bundle.Immunizations)
	fetch(g, gctx, id, ResourceProcedure, a.source.Procedures, &bundle.Procedures)
	fetch(g, gctx, id, ResourceCarePlan, a.source.CarePlans, &bundle.CarePlans)

	if err := g.Wait(); err != nil {
		return domain.ClinicalBundle{}, err
	}
	return bundle, nil
}

func fetch[T any](g *errgroup.Group, ctx context.Context, id domain.PatientID, resource string, call func(context.Context, domain.PatientID) (T, error), dst *T) {
	g.Go(func() error {
		value, err := call(ctx, id)
		if err != nil {
			return &LoadError{PatientID: id, Resource: resource, Err: err}
		}
		*dst = value
		return nil
	})
}

func (a *Aggregator) snapshotObserversLocked() []func(domain.LoadState) {
	if len(a.observers) == 0 {
		return nil
	}
	return slices.Clone(a.observers)
}

func notify(observers []func(domain.LoadState), state domain.LoadState) {
	for _, fn := range observers {
		fn(state)
	}
}
