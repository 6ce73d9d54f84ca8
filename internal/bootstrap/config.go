package bootstrap

import (
	"github.com/wolfeidau/gatehouse/internal/identity"
	"github.com/wolfeidau/gatehouse/internal/report"
	"github.com/wolfeidau/gatehouse/internal/telemetry"
)

// Config holds the collaborators of a Seeder.
type Config struct {
	// Creator runs account creation for the deployment's login field.
	Creator *identity.Creator

	// Reporter receives the operator-facing lines.
	Reporter *report.Reporter

	// Debug gates the batch import. It comes from settings, never from the batch file.
	Debug bool

	// Metrics defaults to telemetry.GetMetrics().
	Metrics *telemetry.Metrics
}

// BatchResult counts the outcome of each record in a batch import.
type BatchResult struct {
	Created int
	Skipped int
	Failed  int
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Created + r.Skipped + r.Failed
}
