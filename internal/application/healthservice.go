package application

import (
	"context"

	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// HealthStatus is the state of one component, or of the service overall.
type HealthStatus string

const (
	HealthOK       HealthStatus = "ok"
	HealthDegraded HealthStatus = "degraded"
	HealthDown     HealthStatus = "down"
)

// HealthCheck is the result of probing one component.
type HealthCheck struct {
	Name   string
	Status HealthStatus
	Detail string
}

// HealthSummary is the combined view served by the health endpoint.
type HealthSummary struct {
	Status   HealthStatus
	Checks   []HealthCheck
	Sessions int
}

// authenticator is implemented by searchers that know whether they send a token.
type authenticator interface {
	Authenticated() bool
}

// HealthService probes the database and the repository searcher. It depends
// only on port interfaces and the searcher provider.
type HealthService struct {
	db       driven.Pinger
	provider *SearcherProvider
	sessions func() int
}

// NewHealthService creates a HealthService. sessions may be nil when no
// browser registry is running.
func NewHealthService(db driven.Pinger, provider *SearcherProvider, sessions func() int) *HealthService {
	return &HealthService{db: db, provider: provider, sessions: sessions}
}

// Check runs every probe and combines them.
func (s *HealthService) Check(ctx context.Context) HealthSummary {
	checks := []HealthCheck{s.checkDatabase(ctx), s.checkSearcher()}

	summary := HealthSummary{
		Status: combineHealth(checks),
		Checks: checks,
	}
	if s.sessions != nil {
		summary.Sessions = s.sessions()
	}
	return summary
}

func (s *HealthService) checkDatabase(ctx context.Context) HealthCheck {
	if err := s.db.Ping(ctx); err != nil {
		return HealthCheck{Name: "database", Status: HealthDown, Detail: err.Error()}
	}
	return HealthCheck{Name: "database", Status: HealthOK}
}

// checkSearcher reports an unauthenticated searcher as degraded: it works, but
// under GitHub's much lower anonymous search quota.
func (s *HealthService) checkSearcher() HealthCheck {
	if !s.provider.HasSearcher() {
		return HealthCheck{Name: "github", Status: HealthDown, Detail: "no searcher configured"}
	}
	if a, ok := s.provider.Current().(authenticator); ok && !a.Authenticated() {
		return HealthCheck{Name: "github", Status: HealthDegraded, Detail: "unauthenticated"}
	}
	return HealthCheck{Name: "github", Status: HealthOK}
}

// combineHealth aggregates component states. Priority: down > degraded > ok.
func combineHealth(checks []HealthCheck) HealthStatus {
	var hasDown, hasDegraded bool

	for _, c := range checks {
		switch c.Status {
		case HealthDown:
			hasDown = true
		case HealthDegraded:
			hasDegraded = true
		case HealthOK:
			// no flag needed
		}
	}

	if hasDown {
		return HealthDown
	}
	if hasDegraded {
		return HealthDegraded
	}
	return HealthOK
}
