package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/thedailylaw/dailylaw-be/types"
)

// CongressService is the legislative data source.
type CongressService interface {
	FetchRecentBills(ctx context.Context, limit, offset int) ([]types.CongressBill, error)
}

type congressService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCongressService(baseURL, apiKey string) CongressService {
	return &congressService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type congressActionPayload struct {
	ActionDate string `json:"actionDate"`
	Text       string `json:"text"`
}

type congressMemberPayload struct {
	FullName string `json:"fullName"`
}

type congressBillPayload struct {
	Congress      int                     `json:"congress"`
	LatestAction  *congressActionPayload  `json:"latestAction"`
	Number        string                  `json:"number"`
	OriginChamber string                  `json:"originChamber"`
	Title         string                  `json:"title"`
	Type          string                  `json:"type"`
	UpdateDate    string                  `json:"updateDate"`
	URL           string                  `json:"url"`
	Sponsors      []congressMemberPayload `json:"sponsors"`
	Cosponsors    []congressMemberPayload `json:"cosponsors"`
}

type congressListResponse struct {
	Bills []congressBillPayload `json:"bills"`
}

func (s *congressService) FetchRecentBills(ctx context.Context, limit, offset int) ([]types.CongressBill, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("sort", "updateDate desc")
	params.Set("api_key", s.apiKey)

	endpoint := fmt.Sprintf("%s/bill?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build congress request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch recent bills: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("congress API returned status %d", resp.StatusCode)
	}

	var payload congressListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode congress response: %w", err)
	}

	bills := make([]types.CongressBill, 0, len(payload.Bills))
	for _, raw := range payload.Bills {
		bills = append(bills, mapCongressBill(raw))
	}
	return bills, nil
}

func mapCongressBill(raw congressBillPayload) types.CongressBill {
	bill := types.CongressBill{
		BillID:         fmt.Sprintf("%s%s-%d", strings.ToUpper(raw.Type), raw.Number, raw.Congress),
		Title:          raw.Title,
		OriginChamber:  raw.OriginChamber,
		Type:           raw.Type,
		Number:         raw.Number,
		Congress:       raw.Congress,
		UpdateDate:     raw.UpdateDate,
		CongressGovURL: raw.URL,
	}
	if raw.LatestAction != nil {
		bill.LatestAction = &types.LatestAction{
			Text:       raw.LatestAction.Text,
			ActionDate: raw.LatestAction.ActionDate,
		}
	}
	for _, m := range raw.Sponsors {
		bill.Sponsors = append(bill.Sponsors, m.FullName)
	}
	for _, m := range raw.Cosponsors {
		bill.Cosponsors = append(bill.Cosponsors, m.FullName)
	}
	return bill
}
