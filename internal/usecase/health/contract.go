package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SourceChecker checks the tool source (e.g. Supabase) availability.
type SourceChecker interface {
	Ping(ctx context.Context) error
}
