// Package metrics defines the custom Prometheus metrics of the complaints
// API. HTTP request metrics come from echoprometheus; the ones here count
// domain outcomes.
//
// All collectors are registered with the default registry via promauto.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

const namespace = "complaints"

// Operation label values.
const (
	OpCreate = "create"
	OpList   = "list"
	OpUpdate = "update"
	OpDelete = "delete"
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials or payload) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ComplaintOperationsTotal counts complaint use-case calls.
// Labels:
//   - operation: create, list, update, delete
//   - outcome: ok, invalid, not_found, forbidden, error
var ComplaintOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "complaint_operations_total",
		Help:      "Total number of complaint operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// IdempotentReplaysTotal counts creates answered from a stored Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of complaint creations answered from a stored idempotency key.",
	},
)

// ObserveComplaint records the outcome of one complaint operation.
func ObserveComplaint(operation string, err error) {
	ComplaintOperationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}

// ObserveLogin records the result of one login attempt.
func ObserveLogin(err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidInput):
		result = "rejected"
	default:
		result = "error"
	}
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// Outcome classifies err into an outcome label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrComplaintNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpdateForbidden), errors.Is(err, domain.ErrDeleteForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidPayload), errors.Is(err, domain.ErrNoFieldsToUpdate):
		return "invalid"
	default:
		return "error"
	}
}
