package health

import "context"

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SourceChecker checks that the catalog document source is reachable.
type SourceChecker interface {
	Check(ctx context.Context) error
}
