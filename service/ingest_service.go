package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thedailylaw/dailylaw-be/repository"
	"github.com/thedailylaw/dailylaw-be/types"
	"github.com/thedailylaw/dailylaw-be/utils"
)

const defaultIngestLimit = 200

// IngestService drives the periodic ingestion cycle: pull batches from the
// legislative source, enrich and persist new bills, and patch stored bills
// when their status drifts.
type IngestService interface {
	IngestNewBills(ctx context.Context) (*types.BatchReport, error)
	CheckUpdates(ctx context.Context) (*types.BatchReport, error)
	RegenerateTrackedArticles(ctx context.Context) (*types.BatchReport, error)
}

// IngestConfig tunes a single ingestion run. ChamberFilter empty means bills
// from both chambers are ingested.
type IngestConfig struct {
	Limit         int
	ChamberFilter string
}

type ingestService struct {
	repo     repository.BillRepo
	congress CongressService
	funding  FundingService
	articles ArticleService // nil means placeholder records
	cfg      IngestConfig
	now      func() time.Time
}

func NewIngestService(repo repository.BillRepo, congress CongressService, funding FundingService, articles ArticleService, cfg IngestConfig) IngestService {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultIngestLimit
	}
	return &ingestService{
		repo:     repo,
		congress: congress,
		funding:  funding,
		articles: articles,
		cfg:      cfg,
		now:      time.Now,
	}
}

func newBatchReport(job string, now time.Time) *types.BatchReport {
	return &types.BatchReport{
		RunID:     uuid.NewString(),
		Job:       job,
		StartedAt: now,
	}
}

// IngestNewBills fetches a batch of recent bills and inserts the ones not yet
// stored. Idempotent per bill_id: re-running the same batch creates no
// duplicates. One bill's failure never aborts the rest of the batch.
func (s *ingestService) IngestNewBills(ctx context.Context) (*types.BatchReport, error) {
	report := newBatchReport("ingest-new-bills", s.now())

	bills, err := s.congress.FetchRecentBills(ctx, s.cfg.Limit, 0)
	if err != nil {
		return nil, err
	}

	for _, bill := range bills {
		if s.cfg.ChamberFilter != "" && bill.OriginChamber != s.cfg.ChamberFilter {
			continue
		}

		exists, err := s.repo.ExistsByBillID(ctx, bill.BillID)
		if err != nil {
			log.Printf("Existence check failed for %s: %v", bill.BillID, err)
			report.Record(bill.BillID, types.BillActionFailed, err)
			continue
		}
		if exists {
			report.Record(bill.BillID, types.BillActionSkipped, nil)
			continue
		}

		record := s.buildRecord(ctx, bill)
		if err := s.repo.Insert(ctx, record); err != nil {
			log.Printf("Failed to insert %s: %v", bill.BillID, err)
			report.Record(bill.BillID, types.BillActionFailed, err)
			continue
		}
		report.Record(bill.BillID, types.BillActionInserted, nil)
	}

	report.FinishedAt = s.now()
	log.Printf("Ingestion run %s: %d inserted, %d skipped, %d failed",
		report.RunID, report.Count(types.BillActionInserted), report.Count(types.BillActionSkipped), report.Count(types.BillActionFailed))
	return report, nil
}

func (s *ingestService) buildRecord(ctx context.Context, bill types.CongressBill) *types.BillRecord {
	sponsorData := types.SponsorData{
		Sponsors:   s.resolveSponsors(ctx, bill.Sponsors),
		Cosponsors: s.resolveSponsors(ctx, bill.Cosponsors),
	}

	content := s.synthesize(ctx, bill, sponsorData)

	now := s.now().Unix()
	return &types.BillRecord{
		BillID:          bill.BillID,
		Congress:        bill.Congress,
		Type:            bill.Type,
		OriginChamber:   bill.OriginChamber,
		Title:           content.Title,
		TLDR:            content.TLDR,
		MarkdownBody:    content.MarkdownBody,
		SEOTitle:        content.SEOTitle,
		MetaDescription: content.MetaDescription,
		Keywords:        content.Keywords,
		URLSlug:         utils.SlugFromTitle(bill.Title),
		UpdateDate:      bill.UpdateDate,
		LatestAction:    bill.LatestAction,
		CongressGovURL:  bill.CongressGovURL,
		SponsorData:     sponsorData,
		CreatedAt:       now,
		LastUpdated:     now,
	}
}

// synthesize runs inline article generation when configured and falls back to
// the tracking placeholder on any failure, so a synthesis outage never blocks
// a bill from being recorded.
func (s *ingestService) synthesize(ctx context.Context, bill types.CongressBill, sponsors types.SponsorData) *types.ArticleContent {
	if s.articles == nil {
		return PlaceholderArticle(bill)
	}
	content, err := s.articles.GenerateArticle(ctx, bill, sponsors)
	if err != nil {
		log.Printf("Article synthesis failed for %s, inserting placeholder: %v", bill.BillID, err)
		return PlaceholderArticle(bill)
	}
	return content
}

func (s *ingestService) resolveSponsors(ctx context.Context, names []string) []types.Sponsor {
	sponsors := make([]types.Sponsor, 0, len(names))
	for _, name := range names {
		sponsor := types.Sponsor{Name: name}
		if s.funding != nil {
			funding, err := s.funding.ResolveSponsorFunding(ctx, name)
			if err != nil {
				log.Printf("Funding lookup failed for %q: %v", name, err)
			} else {
				sponsor.Funding = funding
			}
		}
		sponsors = append(sponsors, sponsor)
	}
	return sponsors
}

// CheckUpdates diffs every stored bill against a fresh fetch and appends an
// update notice where the status drifted. Status fields and the notice are
// rewritten as one persistence operation per bill; a failed write is recorded
// and the loop continues.
func (s *ingestService) CheckUpdates(ctx context.Context) (*types.BatchReport, error) {
	report := newBatchReport("check-updates", s.now())

	stored, err := s.repo.ListStatusFields(ctx)
	if err != nil {
		return nil, err
	}

	fresh, err := s.congress.FetchRecentBills(ctx, s.cfg.Limit, 0)
	if err != nil {
		return nil, err
	}
	freshByID := make(map[string]types.CongressBill, len(fresh))
	for _, bill := range fresh {
		freshByID[bill.BillID] = bill
	}

	for _, existing := range stored {
		freshBill, ok := freshByID[existing.BillID]
		if !ok {
			continue
		}

		change, changed := DetectBillChange(existing, freshBill, s.now())
		if !changed {
			report.Record(existing.BillID, types.BillActionUnchanged, nil)
			continue
		}

		update := repository.BillUpdate{
			UpdateDate:   change.UpdateDate,
			LatestAction: change.LatestAction,
			MarkdownBody: existing.MarkdownBody + change.Notice,
			LastUpdated:  s.now().Unix(),
		}
		if err := s.repo.ApplyUpdate(ctx, existing.BillID, update); err != nil {
			log.Printf("Failed to update %s: %v", existing.BillID, err)
			report.Record(existing.BillID, types.BillActionFailed, err)
			continue
		}
		report.Record(existing.BillID, types.BillActionUpdated, nil)
	}

	report.FinishedAt = s.now()
	log.Printf("Update run %s: %d updated, %d unchanged, %d failed",
		report.RunID, report.Count(types.BillActionUpdated), report.Count(types.BillActionUnchanged), report.Count(types.BillActionFailed))
	return report, nil
}

// RegenerateTrackedArticles backfills full articles for bills still carrying
// the tracking placeholder.
func (s *ingestService) RegenerateTrackedArticles(ctx context.Context) (*types.BatchReport, error) {
	if s.articles == nil {
		return nil, errors.New("no article service configured")
	}
	report := newBatchReport("regenerate-articles", s.now())

	tracked, err := s.repo.ListByBodyMarker(ctx, TrackedMarker)
	if err != nil {
		return nil, err
	}

	for _, record := range tracked {
		bill := types.CongressBill{
			BillID:         record.BillID,
			Title:          record.Title,
			OriginChamber:  record.OriginChamber,
			Type:           record.Type,
			Congress:       record.Congress,
			UpdateDate:     record.UpdateDate,
			LatestAction:   record.LatestAction,
			CongressGovURL: record.CongressGovURL,
		}
		content, err := s.articles.GenerateArticle(ctx, bill, record.SponsorData)
		if err != nil {
			log.Printf("Article synthesis failed for %s: %v", record.BillID, err)
			report.Record(record.BillID, types.BillActionFailed, err)
			continue
		}
		if err := s.repo.UpdateContent(ctx, record.BillID, content, s.now().Unix()); err != nil {
			log.Printf("Failed to update content for %s: %v", record.BillID, err)
			report.Record(record.BillID, types.BillActionFailed, err)
			continue
		}
		report.Record(record.BillID, types.BillActionUpdated, nil)
	}

	report.FinishedAt = s.now()
	log.Printf("Backfill run %s: %d updated, %d failed",
		report.RunID, report.Count(types.BillActionUpdated), report.Count(types.BillActionFailed))
	return report, nil
}
