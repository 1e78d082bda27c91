package cmd

import "time"

// Config carries all environment-sourced settings: database connection, HTTP
// port, collaborator endpoints, and the dispatch policy tunables.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NotificationServiceURL string
	PaymentServiceURL      string
	CollaboratorTimeout    time.Duration

	// DispatchInitialRadiusKm is the radius a fresh driver search starts with.
	DispatchInitialRadiusKm float64

	// DispatchMaxRadiusKm caps radius escalation by the sweeper.
	DispatchMaxRadiusKm float64

	// PendingMaxAge is how long an order may sit unconfirmed before it expires.
	PendingMaxAge time.Duration

	// EscalationThreshold is the search duration after which the radius widens.
	EscalationThreshold time.Duration

	// HardTimeout is the search duration after which the order is rejected.
	HardTimeout time.Duration

	// SweepSchedule is the sweep job's cron spec (six fields, with seconds).
	SweepSchedule string
}
