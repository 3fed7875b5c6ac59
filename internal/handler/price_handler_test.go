package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/scraper"
	"github.com/biftracker/backend/internal/service"
)

// MockPriceTracker implements PriceTrackerInterface for testing
type MockPriceTracker struct {
	mock.Mock
}

func (m *MockPriceTracker) CheckAllTrackedItems(ctx context.Context) (service.CheckSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.CheckSummary), args.Error(1)
}

func (m *MockPriceTracker) GetHealthStatus(nextRunTime time.Time) scraper.HealthStatus {
	args := m.Called(nextRunTime)
	return args.Get(0).(scraper.HealthStatus)
}

func TestPriceHandler_Check(t *testing.T) {
	t.Parallel()

	t.Run("returns check summary", func(t *testing.T) {
		t.Parallel()

		mockTracker := new(MockPriceTracker)
		mockTracker.On("CheckAllTrackedItems", mock.Anything).
			Return(service.CheckSummary{ItemsChecked: 5, PriceDropsFound: 2}, nil)

		handler := NewPriceHandler(mockTracker, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/prices/check", nil)
		w := httptest.NewRecorder()

		handler.Check(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var summary service.CheckSummary
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 5, summary.ItemsChecked)
		assert.Equal(t, 2, summary.PriceDropsFound)
		mockTracker.AssertExpectations(t)
	})

	t.Run("check failure", func(t *testing.T) {
		t.Parallel()

		mockTracker := new(MockPriceTracker)
		mockTracker.On("CheckAllTrackedItems", mock.Anything).
			Return(service.CheckSummary{}, errors.New("db unavailable"))

		handler := NewPriceHandler(mockTracker, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/prices/check", nil)
		w := httptest.NewRecorder()

		handler.Check(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPriceHandler_Health(t *testing.T) {
	t.Parallel()

	t.Run("reports scheduler next run", func(t *testing.T) {
		t.Parallel()

		nextRun := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
		mockTracker := new(MockPriceTracker)
		mockTracker.On("GetHealthStatus", nextRun).Return(scraper.HealthStatus{
			Healthy:      true,
			NextRunTime:  nextRun,
			LinksChecked: 10,
			PricesFound:  9,
			RetailerStatuses: map[model.Retailer]string{
				model.RetailerAmazon: "ok",
			},
		})

		handler := NewPriceHandler(mockTracker, func() time.Time { return nextRun })
		req := httptest.NewRequest(http.MethodGet, "/api/prices/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var status scraper.HealthStatus
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.True(t, status.Healthy)
		assert.Equal(t, 10, status.LinksChecked)
		mockTracker.AssertExpectations(t)
	})

	t.Run("scheduler disabled", func(t *testing.T) {
		t.Parallel()

		mockTracker := new(MockPriceTracker)
		mockTracker.On("GetHealthStatus", time.Time{}).Return(scraper.HealthStatus{
			Healthy: true,
			Message: "no check cycles completed yet",
		})

		handler := NewPriceHandler(mockTracker, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/prices/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockTracker.AssertExpectations(t)
	})
}
