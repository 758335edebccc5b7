package resolve

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// DodgeRequest is the shared mutable context of one dodge requirement.
// Every provider tried for the request mutates the same instance; exactly
// one provider may mark it resolved.
type DodgeRequest struct {
	Defender              int
	Attacker              int // -1 when none
	Source                *rules.Event
	Resolved              bool
	ProvidedBy            string
	ProvidedCard          string
	HighPriorityActivated bool
}

// DodgeProvider is one independent way to satisfy a dodge requirement:
// ability-granted, equipment-granted, or the manual dodge card. A
// provider may resolve the request synchronously, or defer by pushing its
// own follow-up resolvers that complete the request later in the chain.
// A provider swallows its own side-effect failures ("does not activate");
// a returned error is a structural fault.
type DodgeProvider interface {
	Name() string
	// Priority orders providers; lower values are tried first.
	Priority() int
	Provide(req *DodgeRequest, ctx *Context) error
}

// DodgeChain tries providers in ascending priority order until the shared
// request reports resolved, or until a provider sets
// HighPriorityActivated, which locks out every lower-priority provider
// for this invocation even before the activating provider finishes. The
// chain always reports success to the stack once providers have been
// tried, trusting a deferred chain to complete the coordination later.
type DodgeChain struct {
	Request   *DodgeRequest
	Providers []DodgeProvider
}

// Kind implements Resolver.
func (r *DodgeChain) Kind() Kind { return KindDodgeChain }

// Resolve implements Resolver. The session is a hard precondition here:
// the chain exists to coordinate through it, and its absence is a broken
// invariant rather than a recoverable outcome.
func (r *DodgeChain) Resolve(ctx *Context) (Result, error) {
	if ctx.Session == nil {
		return Result{}, fmt.Errorf("dodge chain: session missing from context")
	}
	if r.Request == nil {
		return Result{}, fmt.Errorf("dodge chain: nil request")
	}

	providers := append([]DodgeProvider(nil), r.Providers...)
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority() < providers[j].Priority()
	})

	for _, p := range providers {
		if r.Request.Resolved || r.Request.HighPriorityActivated {
			break
		}
		if err := p.Provide(r.Request, ctx); err != nil {
			return Result{}, fmt.Errorf("dodge provider %s: %w", p.Name(), err)
		}
		ctx.Log().Debug("dodge provider tried",
			zap.String("provider", p.Name()),
			zap.Int("priority", p.Priority()),
			zap.Bool("resolved", r.Request.Resolved),
			zap.Bool("high_priority_activated", r.Request.HighPriorityActivated),
		)
	}

	Put(ctx.Session, KeyDodgeRequest, r.Request)
	return Success(), nil
}

// ManualDodgeProvider is the lowest-priority provider: it defers to a
// response window polling the defender for a dodge card, plus a follow-up
// frame that copies the window outcome back into the shared request.
type ManualDodgeProvider struct {
	priority int
}

// NewManualDodgeProvider creates the manual-card provider at the given
// priority; by convention this is the highest number in any chain.
func NewManualDodgeProvider(priority int) *ManualDodgeProvider {
	return &ManualDodgeProvider{priority: priority}
}

// Name implements DodgeProvider.
func (p *ManualDodgeProvider) Name() string { return "dodge-card" }

// Priority implements DodgeProvider.
func (p *ManualDodgeProvider) Priority() int { return p.priority }

// Provide implements DodgeProvider by deferring: the pushed window runs
// first, then the sync frame writes the shared request.
func (p *ManualDodgeProvider) Provide(req *DodgeRequest, ctx *Context) error {
	sourceSeat := req.Attacker
	ctx.Stack.Push(&dodgeRequestSync{request: req, providedBy: p.Name()}, *ctx)
	ctx.Stack.Push(&ResponseWindow{
		Response:   rules.ResponseDodge,
		Responders: []int{req.Defender},
		SourceSeat: sourceSeat,
	}, ctx.WithActor(req.Defender))
	return nil
}

// dodgeRequestSync completes a deferred manual dodge: it reads the window
// outcome from the session and resolves the shared request on success.
type dodgeRequestSync struct {
	request    *DodgeRequest
	providedBy string
}

func (r *dodgeRequestSync) Kind() Kind { return KindDodgeChain }

func (r *dodgeRequestSync) Resolve(ctx *Context) (Result, error) {
	if ctx.Session == nil {
		return Result{}, fmt.Errorf("dodge sync: session missing from context")
	}
	outcome, ok := Get(ctx.Session, KeyResponseOutcome)
	if !ok {
		return Failure(ErrInvalidState, "dodge.window-outcome.missing"), nil
	}
	if outcome.Kind == ResponseSuccessful {
		r.request.Resolved = true
		r.request.ProvidedBy = r.providedBy
		r.request.ProvidedCard = outcome.CardID
	}
	return Success(), nil
}
