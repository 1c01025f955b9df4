package health

import (
	"time"

	"github.com/architect/math-prep/internal/common/database"
)

// Status is the health report returned by Check.
type Status struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Checker runs the service health checks.
type Checker struct {
	startedAt time.Time
}

func NewChecker() *Checker {
	return &Checker{startedAt: time.Now()}
}

// Check reports overall health with per-dependency detail.
func (h *Checker) Check() Status {
	checks := map[string]string{}
	overall := "ok"

	if err := database.Ping(); err != nil {
		checks["database"] = err.Error()
		overall = "degraded"
	} else {
		checks["database"] = "ok"
	}

	checks["uptime"] = time.Since(h.startedAt).String()

	return Status{
		Status:    overall,
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

// IsReady reports whether the service can take traffic.
func (h *Checker) IsReady() bool {
	return database.Ping() == nil
}
