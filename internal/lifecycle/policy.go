// Package lifecycle decides which status changes a job group may take.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/qmuntal/stateless"

	"jobsheet-service/internal/jobgroup"
	"jobsheet-service/internal/model"
)

var (
	ErrUnknownStatus        = errors.New("unknown status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrPrivilegeRequired    = errors.New("only office accounts may invoice")
)

type Decision string

const (
	// DecisionApply means the status can be cascaded right away.
	DecisionApply Decision = "apply"
	// DecisionInvoiceNumberRequired defers an Invoiced transition until an
	// invoice number is supplied.
	DecisionInvoiceNumberRequired Decision = "invoice_number_required"
)

type trigger string

func moveTo(status model.JobStatus) trigger {
	return trigger("to " + string(status))
}

// workingStatuses can move between each other, to Invoiced and to Cancelled.
var workingStatuses = []model.JobStatus{
	model.JobStatusOpen,
	model.JobStatusInProgress,
	model.JobStatusPendingInvoice,
}

type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

func (p *Policy) machine(from model.JobStatus) *stateless.StateMachine {
	sm := stateless.NewStateMachine(from)

	for _, state := range workingStatuses {
		cfg := sm.Configure(state)
		for _, target := range workingStatuses {
			if target != state {
				cfg.Permit(moveTo(target), target)
			}
		}
		cfg.Permit(moveTo(model.JobStatusInvoiced), model.JobStatusInvoiced)
		cfg.Permit(moveTo(model.JobStatusCancelled), model.JobStatusCancelled)
	}

	sm.Configure(model.JobStatusInvoiced)
	sm.Configure(model.JobStatusCancelled)

	return sm
}

// CanTransition checks the transition table and the invoicing privilege.
func (p *Policy) CanTransition(from, to model.JobStatus, viewer model.Principal) error {
	if !from.Valid() || !to.Valid() {
		return ErrUnknownStatus
	}
	if to == model.JobStatusInvoiced && !viewer.IsPrivileged() {
		return ErrPrivilegeRequired
	}
	if err := p.machine(from).Fire(moveTo(to)); err != nil {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
	}
	return nil
}

// Evaluate decides what happens when group is moved from its current
// status to target. invoiceSupplied is true when the caller provides an
// invoice number along with the request.
func (p *Policy) Evaluate(group jobgroup.Group, from, to model.JobStatus, viewer model.Principal, invoiceSupplied bool) (Decision, error) {
	if err := p.CanTransition(from, to, viewer); err != nil {
		return "", err
	}
	if to == model.JobStatusInvoiced && !invoiceSupplied && !group.AllInvoiced() {
		return DecisionInvoiceNumberRequired, nil
	}
	return DecisionApply, nil
}

// AllowedTargets lists the statuses the viewer may pick from the given one.
func (p *Policy) AllowedTargets(from model.JobStatus, viewer model.Principal) []model.JobStatus {
	var targets []model.JobStatus
	for _, to := range model.JobStatuses {
		if to == from {
			continue
		}
		if p.CanTransition(from, to, viewer) == nil {
			targets = append(targets, to)
		}
	}
	return targets
}
