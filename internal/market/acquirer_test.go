package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/internal/market/mocks"
	"github.com/devkwon/stocksage/pkg/config"
	"github.com/devkwon/stocksage/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func snapshotFor(source market.Source) *market.Snapshot {
	return &market.Snapshot{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Price:         150,
		PreviousClose: 145,
		Change:        5,
		ChangePercent: 3.45,
		Source:        source,
	}
}

func TestAcquireFirstProviderWins(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := mocks.NewMockProvider(ctrl)
	secondary := mocks.NewMockProvider(ctrl)
	news := mocks.NewMockNewsProvider(ctrl)

	primary.EXPECT().
		Fetch(gomock.Any(), "AAPL").
		Return(snapshotFor(market.SourceAlphaVantage), nil)
	news.EXPECT().
		FetchNews(gomock.Any(), "AAPL").
		Return([]market.NewsItem{{Headline: "headline"}}, nil)

	// The secondary provider must never be called.
	acquirer := market.NewAcquirer([]market.Provider{primary, secondary}, news, testLogger())

	snapshot, items, err := acquirer.Acquire(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, market.SourceAlphaVantage, snapshot.Source)
	require.Len(t, items, 1)
}

func TestAcquireFallsBackToSecondary(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := mocks.NewMockProvider(ctrl)
	secondary := mocks.NewMockProvider(ctrl)
	news := mocks.NewMockNewsProvider(ctrl)

	primary.EXPECT().
		Fetch(gomock.Any(), "AAPL").
		Return(nil, market.NewUpstreamError("alphavantage", "API limit reached"))
	primary.EXPECT().Name().Return("alphavantage").AnyTimes()
	secondary.EXPECT().
		Fetch(gomock.Any(), "AAPL").
		Return(snapshotFor(market.SourceYahoo), nil)
	news.EXPECT().
		FetchNews(gomock.Any(), "AAPL").
		Return([]market.NewsItem{}, nil)

	acquirer := market.NewAcquirer([]market.Provider{primary, secondary}, news, testLogger())

	snapshot, _, err := acquirer.Acquire(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, market.SourceYahoo, snapshot.Source, "snapshot must carry the succeeding provider's source tag")
}

func TestAcquireAllProvidersFail(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := mocks.NewMockProvider(ctrl)
	secondary := mocks.NewMockProvider(ctrl)
	news := mocks.NewMockNewsProvider(ctrl)

	lastFailure := market.NewUpstreamError("yahoo", "No data found")

	primary.EXPECT().
		Fetch(gomock.Any(), "ZZZZ").
		Return(nil, market.NewUpstreamError("alphavantage", "API limit reached"))
	primary.EXPECT().Name().Return("alphavantage").AnyTimes()
	secondary.EXPECT().
		Fetch(gomock.Any(), "ZZZZ").
		Return(nil, lastFailure)
	secondary.EXPECT().Name().Return("yahoo").AnyTimes()
	news.EXPECT().
		FetchNews(gomock.Any(), "ZZZZ").
		Return(nil, nil).
		AnyTimes()

	acquirer := market.NewAcquirer([]market.Provider{primary, secondary}, news, testLogger())

	_, _, err := acquirer.Acquire(context.Background(), "ZZZZ")
	require.Error(t, err)

	var noData *market.NoDataError
	require.ErrorAs(t, err, &noData)
	require.Equal(t, "ZZZZ", noData.Ticker)
	require.ErrorIs(t, err, lastFailure)
}

func TestAcquireNewsFailureDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := mocks.NewMockProvider(ctrl)
	news := mocks.NewMockNewsProvider(ctrl)

	primary.EXPECT().
		Fetch(gomock.Any(), "AAPL").
		Return(snapshotFor(market.SourceAlphaVantage), nil)
	news.EXPECT().
		FetchNews(gomock.Any(), "AAPL").
		Return(nil, errors.New("news backend down"))

	acquirer := market.NewAcquirer([]market.Provider{primary}, news, testLogger())

	snapshot, items, err := acquirer.Acquire(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.NotNil(t, items, "news must degrade to an empty list, not nil")
	require.Empty(t, items)
}

func TestAcquireCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := mocks.NewMockProvider(ctrl)
	news := mocks.NewMockNewsProvider(ctrl)
	news.EXPECT().FetchNews(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquirer := market.NewAcquirer([]market.Provider{primary}, news, testLogger())

	_, _, err := acquirer.Acquire(ctx, "AAPL")
	require.ErrorIs(t, err, context.Canceled)
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := market.WrapUpstreamError("alphavantage", "parse quote", errors.New("unexpected EOF"))
	require.Equal(t, "alphavantage: parse quote: unexpected EOF", err.Error())

	bare := market.NewUpstreamError("yahoo", "No data found")
	require.Equal(t, "yahoo: No data found", bare.Error())
}
