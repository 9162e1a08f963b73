package headless

import (
	"context"

	"github.com/auditkit/seo-audit/internal/audit"
)

// Noop implements audit.PerfAuditor for builds or deployments where
// headless browsing is disabled. It always reports the no-data sentinel.
type Noop struct{}

// NewNoop creates a new Noop prober.
func NewNoop() *Noop {
	return &Noop{}
}

// Audit returns the no-data sentinel.
func (Noop) Audit(_ context.Context, _ string) audit.PerfResult {
	return audit.PerfResult{Reason: audit.ReasonNoData}
}

// Close is a no-op.
func (Noop) Close() {}
