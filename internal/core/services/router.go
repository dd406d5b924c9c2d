package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Ensure Router implements Stage.
var _ Stage = (*Router)(nil)

// Routing actions.
const (
	ActionInvoicePrefix = "Calling ERP API with invoice data: "
	ActionContract      = "Archiving contract to legal department database."
	ActionResume        = "Forwarding resume to HR Applicant Tracking System."
	ActionManualReview  = "Flagging document for manual review."
)

// RouteAction returns the downstream action for a document type.
// Types without a mapping go to manual review.
func RouteAction(docType domain.DocumentType, entities domain.Entities) string {
	switch docType {
	case domain.DocumentInvoice:
		if entities == nil {
			entities = domain.Entities{}
		}
		data, err := json.Marshal(entities)
		if err != nil {
			data = []byte("{}")
		}
		return ActionInvoicePrefix + string(data)
	case domain.DocumentContract:
		return ActionContract
	case domain.DocumentResume:
		return ActionResume
	default:
		return ActionManualReview
	}
}

// Router decides the downstream action for a classified document.
type Router struct {
	latency  time.Duration
	reporter driven.StepReporter
	now      func() time.Time
}

// NewRouter creates the routing stage.
func NewRouter(latency time.Duration, reporter driven.StepReporter) *Router {
	return &Router{
		latency:  latency,
		reporter: reporterOrNop(reporter),
		now:      time.Now,
	}
}

// Name returns the agent name.
func (r *Router) Name() string {
	return AgentRouter
}

// Run moves a CLASSIFIED event to ROUTED.
func (r *Router) Run(ctx context.Context, ev *domain.Event) domain.StageResult {
	r.reporter.Step(AgentRouter, fmt.Sprintf("Received event for '%s'.", ev.Filename))

	docType := domain.DocumentUnknown
	if ev.Classification != nil {
		docType = ev.Classification.DocumentType
	}
	action := RouteAction(docType, ev.ExtractedEntities)

	_ = pause(ctx, r.latency)

	if err := ev.MarkRouted(action, r.now()); err != nil {
		return domain.Halt(ev, err)
	}
	r.reporter.Step(AgentRouter, "Action: "+action)
	r.reporter.Step(AgentRouter, "Event 'ROUTED' created. Document processing complete.")
	return domain.Continue(ev)
}
