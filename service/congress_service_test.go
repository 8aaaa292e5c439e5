package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRecentBills(t *testing.T) {
	t.Run("maps the source payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/bill", r.URL.Path)
			assert.Equal(t, "200", r.URL.Query().Get("limit"))
			assert.Equal(t, "0", r.URL.Query().Get("offset"))
			assert.NotEmpty(t, r.URL.Query().Get("api_key"))
			w.Write([]byte(`{"bills": [
				{
					"congress": 119,
					"latestAction": {"actionDate": "2025-11-01", "text": "Read twice and referred to committee"},
					"number": "3401",
					"originChamber": "Senate",
					"title": "Pathways to Prosperity Act",
					"type": "S",
					"updateDate": "2025-11-02",
					"url": "https://api.congress.gov/v3/bill/119/s/3401",
					"sponsors": [{"fullName": "Sen. Example, Jane [D-CA]"}]
				},
				{
					"congress": 119,
					"number": "1200",
					"originChamber": "House",
					"title": "Some House Bill",
					"type": "hr",
					"updateDate": "2025-11-03"
				}
			]}`))
		}))
		defer server.Close()

		svc := NewCongressService(server.URL, "test-key")
		bills, err := svc.FetchRecentBills(context.Background(), 200, 0)
		require.NoError(t, err)
		require.Len(t, bills, 2)

		assert.Equal(t, "S3401-119", bills[0].BillID)
		assert.Equal(t, "Senate", bills[0].OriginChamber)
		assert.Equal(t, "2025-11-02", bills[0].UpdateDate)
		require.NotNil(t, bills[0].LatestAction)
		assert.Equal(t, "Read twice and referred to committee", bills[0].LatestAction.Text)
		assert.Equal(t, "2025-11-01", bills[0].LatestAction.ActionDate)
		assert.Equal(t, []string{"Sen. Example, Jane [D-CA]"}, bills[0].Sponsors)

		// Type is uppercased in the dedup key.
		assert.Equal(t, "HR1200-119", bills[1].BillID)
		assert.Nil(t, bills[1].LatestAction)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		svc := NewCongressService(server.URL, "bad-key")
		_, err := svc.FetchRecentBills(context.Background(), 10, 0)
		assert.Error(t, err)
	})
}
