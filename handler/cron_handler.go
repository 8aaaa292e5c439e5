package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thedailylaw/dailylaw-be/service"
	"github.com/thedailylaw/dailylaw-be/types"
)

// CronHandler adapts the external scheduler's POST triggers to the ingestion
// jobs. The 5-hour endpoint chains through the bill-updates endpoint over an
// internal HTTP call; the scheduler only ever sees a single success/failure
// status per trigger.
type CronHandler struct {
	ingestService service.IngestService
	siteURL       string
	cronSecret    string
	client        *http.Client
}

func NewCronHandler(ingestService service.IngestService, siteURL, cronSecret string) *CronHandler {
	return &CronHandler{
		ingestService: ingestService,
		siteURL:       siteURL,
		cronSecret:    cronSecret,
		client:        &http.Client{Timeout: 10 * time.Minute},
	}
}

func (h *CronHandler) HandleBillUpdates(c *gin.Context) {
	report, err := h.ingestService.CheckUpdates(c.Request.Context())
	if err != nil {
		log.Printf("BILL UPDATES: job failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Update check failed",
		})
		return
	}

	c.JSON(http.StatusOK, types.CronResponse{
		Message:   "Bill update check completed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   report,
	})
}

func (h *CronHandler) HandleIngest(c *gin.Context) {
	report, err := h.ingestService.IngestNewBills(c.Request.Context())
	if err != nil {
		log.Printf("INGEST: job failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Ingestion failed",
		})
		return
	}

	c.JSON(http.StatusOK, types.CronResponse{
		Message:   "Bill ingestion completed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   report,
	})
}

// HandleFiveHourUpdates is the coarse trigger called by the external
// scheduler. It invokes the bill-updates endpoint over a trusted internal
// call and relays the outcome.
func (h *CronHandler) HandleFiveHourUpdates(c *gin.Context) {
	log.Println("5-HOUR BILL UPDATE: Starting scheduled check")

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost,
		fmt.Sprintf("%s/api/cron/bill-updates", h.siteURL), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Internal server error",
		})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.cronSecret)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("5-HOUR BILL UPDATE: Failed to trigger updates: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Update check failed",
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("5-HOUR BILL UPDATE: downstream returned status %d", resp.StatusCode)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Update check failed",
		})
		return
	}

	c.JSON(http.StatusOK, types.CronResponse{
		Message:   "5-hour bill update check completed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
