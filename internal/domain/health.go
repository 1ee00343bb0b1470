package domain

// Probe status values reported by the health and readiness endpoints.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// HealthStatus is the liveness payload. A fresh value is built for every
// request; it carries no identity and is never stored.
type HealthStatus struct {
	Status string `json:"status"`
}

// NewHealthStatus returns the static liveness payload.
func NewHealthStatus() HealthStatus {
	return HealthStatus{Status: StatusOK}
}

// ReadinessReport aggregates the outcome of every registered dependency
// check. Checks maps check name to "ok" or the failure message.
type ReadinessReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ready reports whether every check passed.
func (r ReadinessReport) Ready() bool { return r.Status == StatusOK }

// BuildInfo identifies the running service.
type BuildInfo struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}
