package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/weather-lookup/internal/domain"
	"github.com/smartcity/weather-lookup/internal/metrics"
)

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, cityName string) (domain.WeatherSummary, error) {
	args := m.Called(ctx, cityName)
	return args.Get(0).(domain.WeatherSummary), args.Error(1)
}

func (m *MockFetcher) Configured() bool {
	return m.Called().Bool(0)
}

// MockLookupRepo is a mock implementation of LookupRepository
type MockLookupRepo struct {
	mock.Mock
}

func (m *MockLookupRepo) SaveLookup(ctx context.Context, rec domain.LookupRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockLookupRepo) GetLookups(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LookupRecord), args.Error(1)
}

func (m *MockLookupRepo) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupLookupServiceTest() (*LookupService, *MockFetcher, *MockLookupRepo) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := new(MockFetcher)
	repo := new(MockLookupRepo)
	return NewLookupService(fetcher, repo, metrics.New(), logger), fetcher, repo
}

func TestLookup_SuccessIsLogged(t *testing.T) {
	svc, fetcher, repo := setupLookupServiceTest()
	summary := domain.WeatherSummary{City: "Paris", Country: "FR", Temperature: 21}

	fetcher.On("Fetch", mock.Anything, "Paris").Return(summary, nil)
	repo.On("SaveLookup", mock.Anything, mock.MatchedBy(func(rec domain.LookupRecord) bool {
		return rec.City == "Paris" && rec.Outcome == domain.OutcomeOK &&
			rec.Temperature != nil && *rec.Temperature == 21
	})).Return(nil).Once()

	got, err := svc.Lookup(context.Background(), "Paris")
	svc.WaitBackground()

	require.NoError(t, err)
	assert.Equal(t, summary, got)
	fetcher.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestLookup_FailureIsReturnedUnchanged(t *testing.T) {
	svc, fetcher, repo := setupLookupServiceTest()
	notFound := domain.NewQueryError(domain.KindNotFound, "City not found")

	fetcher.On("Fetch", mock.Anything, "Atlantis").Return(domain.WeatherSummary{}, notFound)
	repo.On("SaveLookup", mock.Anything, mock.MatchedBy(func(rec domain.LookupRecord) bool {
		return rec.Outcome == string(domain.KindNotFound) && rec.Temperature == nil
	})).Return(nil).Once()

	_, err := svc.Lookup(context.Background(), "Atlantis")
	svc.WaitBackground()

	assert.Same(t, notFound, err)
	repo.AssertExpectations(t)
}

func TestLookup_EmptyInputIsNotLogged(t *testing.T) {
	svc, fetcher, repo := setupLookupServiceTest()
	fetcher.On("Fetch", mock.Anything, "  ").
		Return(domain.WeatherSummary{}, domain.NewQueryError(domain.KindEmptyInput, "Please enter a city name"))

	_, err := svc.Lookup(context.Background(), "  ")
	svc.WaitBackground()

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	repo.AssertNotCalled(t, "SaveLookup", mock.Anything, mock.Anything)
}

func TestLookup_SaveErrorDoesNotFailLookup(t *testing.T) {
	svc, fetcher, repo := setupLookupServiceTest()
	fetcher.On("Fetch", mock.Anything, "Paris").Return(domain.WeatherSummary{City: "Paris"}, nil)
	repo.On("SaveLookup", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Lookup(context.Background(), "Paris")
	svc.WaitBackground()

	assert.NoError(t, err)
}

func TestHistory_DelegatesToRepository(t *testing.T) {
	svc, _, repo := setupLookupServiceTest()
	from, to := time.Now().Add(-time.Hour), time.Now()
	records := []domain.LookupRecord{{City: "Paris", Outcome: domain.OutcomeOK}}
	repo.On("GetLookups", mock.Anything, from, to).Return(records, nil)

	got, err := svc.History(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestAutoLookup_SkipsWhenNotConfigured(t *testing.T) {
	svc, fetcher, _ := setupLookupServiceTest()
	fetcher.On("Configured").Return(false)

	var buf bytes.Buffer
	AutoLookup(context.Background(), svc, "London", slog.New(slog.NewTextHandler(&buf, nil)))

	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	assert.Contains(t, buf.String(), "API key has not been replaced yet")
}

func TestAutoLookup_LooksUpDefaultCity(t *testing.T) {
	svc, fetcher, repo := setupLookupServiceTest()
	fetcher.On("Configured").Return(true)
	fetcher.On("Fetch", mock.Anything, "London").
		Return(domain.WeatherSummary{City: "London", Country: "GB", Temperature: 12}, nil).Once()
	repo.On("SaveLookup", mock.Anything, mock.Anything).Return(nil)

	var buf bytes.Buffer
	AutoLookup(context.Background(), svc, "London", slog.New(slog.NewTextHandler(&buf, nil)))
	svc.WaitBackground()

	fetcher.AssertExpectations(t)
	assert.Contains(t, buf.String(), "startup lookup")
	assert.Contains(t, buf.String(), "city=London")
}

func TestWaitBackground_WaitsForStartupLookup(t *testing.T) {
	svc, fetcher, repo := setupLookupServiceTest()
	release := make(chan time.Time)
	fetcher.On("Configured").Return(true)
	fetcher.On("Fetch", mock.Anything, "London").
		WaitUntil(release).
		Return(domain.WeatherSummary{City: "London"}, nil).Once()
	repo.On("SaveLookup", mock.Anything, mock.Anything).Return(nil).Once()

	svc.Go(func() {
		AutoLookup(context.Background(), svc, "London", slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	done := make(chan struct{})
	go func() {
		svc.WaitBackground()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WaitBackground returned while the startup lookup was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitBackground did not return")
	}
	fetcher.AssertExpectations(t)
	repo.AssertExpectations(t)
}
