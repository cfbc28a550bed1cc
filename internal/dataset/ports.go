package dataset

import "context"

// Source supplies one raw export blob. Implementations are read-only: the
// dataset is loaded once per process lifetime and again on manual refresh,
// never streamed.
type Source interface {
	// Load returns the raw CSV text of the export.
	Load(ctx context.Context) (string, error)
	// Name identifies the source in logs and the meta endpoint.
	Name() string
}
