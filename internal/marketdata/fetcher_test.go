package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	quotes map[string]*Quote
	errs   map[string]error
	delay  time.Duration
	calls  []string
}

func (s *stubProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	s.calls = append(s.calls, ticker)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if err := s.errs[ticker]; err != nil {
		return nil, err
	}
	return s.quotes[ticker], nil
}

func TestFetchAllDedupesAndSorts(t *testing.T) {
	provider := &stubProvider{quotes: map[string]*Quote{
		"MRVL": {CurrentPrice: fptr(60)},
		"NVDA": {CurrentPrice: fptr(110)},
	}}
	fetcher := NewFetcher(provider, 0, time.Minute, zerolog.Nop())

	result := fetcher.FetchAll(context.Background(), []string{"NVDA", "MRVL", "NVDA", ""})

	assert.Equal(t, []string{"MRVL", "NVDA"}, provider.calls)
	assert.Len(t, result.Quotes, 2)
	assert.Empty(t, result.Failures)
	assert.Empty(t, result.Errors)
}

func TestFetchAllRecordsFailures(t *testing.T) {
	provider := &stubProvider{
		quotes: map[string]*Quote{"NVDA": {CurrentPrice: fptr(110)}},
		errs:   map[string]error{"MRVL": errors.New("connection refused")},
	}
	fetcher := NewFetcher(provider, 0, time.Minute, zerolog.Nop())

	result := fetcher.FetchAll(context.Background(), []string{"NVDA", "MRVL"})

	assert.Len(t, result.Quotes, 1)
	assert.Equal(t, "Network fetch failed", result.Failures["MRVL"])
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "MRVL: connection refused", result.Errors[0])
}

func TestFetchAllDeadlineMarksRemaining(t *testing.T) {
	provider := &stubProvider{
		quotes: map[string]*Quote{
			"AAA": {CurrentPrice: fptr(1)},
			"BBB": {CurrentPrice: fptr(2)},
			"CCC": {CurrentPrice: fptr(3)},
		},
		delay: 30 * time.Millisecond,
	}
	fetcher := NewFetcher(provider, 0, 10*time.Millisecond, zerolog.Nop())

	result := fetcher.FetchAll(context.Background(), []string{"AAA", "BBB", "CCC"})

	// The first ticker starts inside the budget; everything after the
	// deadline is marked failed without being attempted.
	require.NotEmpty(t, result.Quotes)
	assert.Less(t, len(provider.calls), 3)
	for _, ticker := range []string{"BBB", "CCC"} {
		if _, fetched := result.Quotes[ticker]; !fetched {
			assert.Equal(t, "global deadline exceeded, skipping remaining", result.Failures[ticker])
		}
	}
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[len(result.Errors)-1], "global deadline exceeded")
}

func TestFetchAllEmptyInput(t *testing.T) {
	fetcher := NewFetcher(&stubProvider{}, 0, time.Minute, zerolog.Nop())
	result := fetcher.FetchAll(context.Background(), nil)

	assert.Empty(t, result.Quotes)
	assert.Empty(t, result.Failures)
	assert.Empty(t, result.Errors)
}
