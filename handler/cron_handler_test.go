package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/thedailylaw/dailylaw-be/middleware"
	"github.com/thedailylaw/dailylaw-be/types"
)

type fakeIngestService struct {
	checkErr  error
	ingestErr error
	checks    int
	ingests   int
}

func (f *fakeIngestService) IngestNewBills(_ context.Context) (*types.BatchReport, error) {
	f.ingests++
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return &types.BatchReport{RunID: "run-1", Job: "ingest-new-bills"}, nil
}

func (f *fakeIngestService) CheckUpdates(_ context.Context) (*types.BatchReport, error) {
	f.checks++
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &types.BatchReport{RunID: "run-2", Job: "check-updates"}, nil
}

func (f *fakeIngestService) RegenerateTrackedArticles(_ context.Context) (*types.BatchReport, error) {
	return &types.BatchReport{RunID: "run-3", Job: "regenerate-articles"}, nil
}

func newCronRouter(svc *fakeIngestService, siteURL, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCronHandler(svc, siteURL, secret)
	cronRoutes := router.Group("/api/cron")
	cronRoutes.Use(middleware.CronAuthMiddleware(secret))
	{
		cronRoutes.POST("/ingest", h.HandleIngest)
		cronRoutes.POST("/bill-updates", h.HandleBillUpdates)
		cronRoutes.POST("/5-hour-updates", h.HandleFiveHourUpdates)
	}
	return router
}

func TestCronAuth(t *testing.T) {
	svc := &fakeIngestService{}
	router := newCronRouter(svc, "http://localhost:8080", "topsecret")

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/bill-updates", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, svc.checks, "no processing may occur on auth failure")
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/bill-updates", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, svc.checks)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/bill-updates", nil)
		req.Header.Set("Authorization", "topsecret")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token runs the job", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/bill-updates", nil)
		req.Header.Set("Authorization", "Bearer topsecret")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.checks)
		assert.Contains(t, w.Body.String(), "run-2")
	})

	t.Run("empty configured secret fails closed", func(t *testing.T) {
		closedRouter := newCronRouter(&fakeIngestService{}, "http://localhost:8080", "")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/bill-updates", nil)
		req.Header.Set("Authorization", "Bearer ")
		closedRouter.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCronJobFailureReturnsErrorStatus(t *testing.T) {
	svc := &fakeIngestService{checkErr: errors.New("source unreachable")}
	router := newCronRouter(svc, "http://localhost:8080", "topsecret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cron/bill-updates", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestFiveHourUpdatesChainsThroughUpdateEndpoint(t *testing.T) {
	t.Run("relays downstream success", func(t *testing.T) {
		var gotAuth string
		downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/cron/bill-updates", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"message":"ok"}`))
		}))
		defer downstream.Close()

		router := newCronRouter(&fakeIngestService{}, downstream.URL, "topsecret")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/5-hour-updates", nil)
		req.Header.Set("Authorization", "Bearer topsecret")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Bearer topsecret", gotAuth)
	})

	t.Run("relays downstream failure as error status", func(t *testing.T) {
		downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer downstream.Close()

		router := newCronRouter(&fakeIngestService{}, downstream.URL, "topsecret")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cron/5-hour-updates", nil)
		req.Header.Set("Authorization", "Bearer topsecret")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
