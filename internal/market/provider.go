package market

import "context"

//go:generate mockgen -source=provider.go -destination=mocks/provider_mock.go -package=mocks

// Provider translates one upstream data source's schema into a Snapshot.
// Fetch fails with *UpstreamError when the provider cannot deliver a
// complete snapshot; a missing current price is a hard failure, never a
// partial success. New providers are added by implementing this
// interface, never by branching on provider name downstream.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (*Snapshot, error)
}

// NewsProvider retrieves recent headlines for a ticker. News is
// best-effort enrichment: implementations return placeholder or empty
// results instead of propagating failures.
type NewsProvider interface {
	FetchNews(ctx context.Context, ticker string) ([]NewsItem, error)
}
