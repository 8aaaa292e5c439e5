package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thedailylaw/dailylaw-be/types"
	"github.com/thedailylaw/dailylaw-be/utils"
)

// FundingService resolves a sponsor's campaign-finance context. A nil result
// with a nil error means no data: the capability is best-effort and callers
// must never treat missing funding as a failure.
type FundingService interface {
	ResolveSponsorFunding(ctx context.Context, rawName string) (*types.SponsorFunding, error)
}

type openFECService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOpenFECService(baseURL, apiKey string) FundingService {
	return &openFECService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type fecCandidate struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
}

type fecSearchResponse struct {
	Results []fecCandidate `json:"results"`
}

type fecCycleTotal struct {
	Cycle    int     `json:"cycle"`
	Receipts float64 `json:"receipts"`
}

type fecTotalsResponse struct {
	Results []fecCycleTotal `json:"results"`
}

func (s *openFECService) ResolveSponsorFunding(ctx context.Context, rawName string) (*types.SponsorFunding, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	name := utils.NormalizeSponsorName(rawName)
	if name == "" {
		return nil, nil
	}

	candidate, err := s.searchCandidate(ctx, name)
	if err != nil {
		// Transport and decode failures downgrade to absence. Funding data is
		// optional enrichment, never a hard dependency for publishing a bill.
		log.Printf("OpenFEC error for %q: %v", name, err)
		return nil, nil
	}
	if candidate == nil {
		return nil, nil
	}

	total, err := s.maxCycleReceipts(ctx, candidate.CandidateID)
	if err != nil {
		log.Printf("OpenFEC totals error for %q: %v", candidate.CandidateID, err)
		return nil, nil
	}

	return &types.SponsorFunding{
		// Peak single-cycle receipts, not a lifetime sum.
		TotalRaised:   total,
		TopIndustries: []types.IndustryFunding{},
	}, nil
}

// searchCandidate picks the first result as the resolved identity; there is no
// disambiguation beyond the registry's own ranking.
func (s *openFECService) searchCandidate(ctx context.Context, name string) (*fecCandidate, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("api_key", s.apiKey)
	params.Set("sort_null_only", "false")

	var payload fecSearchResponse
	if err := s.getJSON(ctx, fmt.Sprintf("%s/candidates/search/?%s", s.baseURL, params.Encode()), &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}
	return &payload.Results[0], nil
}

func (s *openFECService) maxCycleReceipts(ctx context.Context, candidateID string) (float64, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("sort", "-cycle")
	params.Set("per_page", "10")

	var payload fecTotalsResponse
	endpoint := fmt.Sprintf("%s/candidate/%s/totals/?%s", s.baseURL, url.PathEscape(candidateID), params.Encode())
	if err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, err
	}

	var max float64
	for _, cycle := range payload.Results {
		if cycle.Receipts > max {
			max = cycle.Receipts
		}
	}
	return max, nil
}

func (s *openFECService) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
