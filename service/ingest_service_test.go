package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thedailylaw/dailylaw-be/repository"
	"github.com/thedailylaw/dailylaw-be/types"
)

type fakeBillRepo struct {
	records    map[string]*types.BillRecord
	insertErr  map[string]error
	applyErr   map[string]error
	applyCalls int
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{
		records:   make(map[string]*types.BillRecord),
		insertErr: make(map[string]error),
		applyErr:  make(map[string]error),
	}
}

func (f *fakeBillRepo) ExistsByBillID(_ context.Context, billID string) (bool, error) {
	_, ok := f.records[billID]
	return ok, nil
}

func (f *fakeBillRepo) Insert(_ context.Context, bill *types.BillRecord) error {
	if err := f.insertErr[bill.BillID]; err != nil {
		return err
	}
	f.records[bill.BillID] = bill
	return nil
}

func (f *fakeBillRepo) GetByBillID(_ context.Context, billID string) (*types.BillRecord, error) {
	bill, ok := f.records[billID]
	if !ok {
		return nil, errors.New("not found")
	}
	return bill, nil
}

func (f *fakeBillRepo) GetBySlug(_ context.Context, slug string) (*types.BillRecord, error) {
	for _, bill := range f.records {
		if bill.URLSlug == slug {
			return bill, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBillRepo) ListStatusFields(_ context.Context) ([]types.StoredBillStatus, error) {
	var out []types.StoredBillStatus
	for _, bill := range f.records {
		out = append(out, types.StoredBillStatus{
			BillID:        bill.BillID,
			Title:         bill.Title,
			OriginChamber: bill.OriginChamber,
			UpdateDate:    bill.UpdateDate,
			LatestAction:  bill.LatestAction,
			MarkdownBody:  bill.MarkdownBody,
		})
	}
	return out, nil
}

func (f *fakeBillRepo) ListByBodyMarker(_ context.Context, marker string) ([]*types.BillRecord, error) {
	var out []*types.BillRecord
	for _, bill := range f.records {
		if strings.Contains(bill.MarkdownBody, marker) {
			out = append(out, bill)
		}
	}
	return out, nil
}

func (f *fakeBillRepo) ApplyUpdate(_ context.Context, billID string, update repository.BillUpdate) error {
	f.applyCalls++
	if err := f.applyErr[billID]; err != nil {
		return err
	}
	bill, ok := f.records[billID]
	if !ok {
		return errors.New("not found")
	}
	bill.UpdateDate = update.UpdateDate
	bill.LatestAction = update.LatestAction
	bill.MarkdownBody = update.MarkdownBody
	bill.LastUpdated = update.LastUpdated
	return nil
}

func (f *fakeBillRepo) UpdateContent(_ context.Context, billID string, content *types.ArticleContent, lastUpdated int64) error {
	bill, ok := f.records[billID]
	if !ok {
		return errors.New("not found")
	}
	bill.Title = content.Title
	bill.SEOTitle = content.SEOTitle
	bill.MetaDescription = content.MetaDescription
	bill.MarkdownBody = content.MarkdownBody
	bill.TLDR = content.TLDR
	bill.Keywords = content.Keywords
	bill.LastUpdated = lastUpdated
	return nil
}

func (f *fakeBillRepo) Paginate(_ context.Context, _, _ int64) ([]*types.BillRecord, int64, error) {
	var out []*types.BillRecord
	for _, bill := range f.records {
		out = append(out, bill)
	}
	return out, int64(len(out)), nil
}

type fakeCongress struct {
	bills []types.CongressBill
	err   error
}

func (f *fakeCongress) FetchRecentBills(_ context.Context, _, _ int) ([]types.CongressBill, error) {
	return f.bills, f.err
}

type fakeFunding struct {
	byName map[string]*types.SponsorFunding
}

func (f *fakeFunding) ResolveSponsorFunding(_ context.Context, rawName string) (*types.SponsorFunding, error) {
	return f.byName[rawName], nil
}

type fakeArticles struct {
	err   error
	calls int
}

func (f *fakeArticles) GenerateArticle(_ context.Context, bill types.CongressBill, _ types.SponsorData) (*types.ArticleContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &types.ArticleContent{
		Title:        bill.Title + " explained",
		SEOTitle:     bill.Title + " explained | The Daily Law",
		MarkdownBody: "# Full analysis of " + bill.BillID,
		TLDR:         "Short summary",
		Keywords:     []string{"legislation"},
	}, nil
}

func sampleBills() []types.CongressBill {
	return []types.CongressBill{
		{
			BillID:         "S3401-119",
			Title:          "The Pathways to Prosperity Act!!",
			OriginChamber:  "Senate",
			Type:           "S",
			Number:         "3401",
			Congress:       119,
			UpdateDate:     "2025-11-02",
			LatestAction:   &types.LatestAction{Text: "Introduced in Senate", ActionDate: "2025-11-01"},
			Sponsors:       []string{"Sen. Example, Jane [D-CA]"},
			CongressGovURL: "https://api.congress.gov/v3/bill/119/s/3401",
		},
		{
			BillID:        "S3395-119",
			Title:         "Mammography Access for Veterans Act of 2025",
			OriginChamber: "Senate",
			Type:          "S",
			Number:        "3395",
			Congress:      119,
			UpdateDate:    "2025-11-01",
		},
	}
}

func TestIngestNewBillsIsIdempotent(t *testing.T) {
	repo := newFakeBillRepo()
	svc := NewIngestService(repo, &fakeCongress{bills: sampleBills()}, nil, nil, IngestConfig{})

	first, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count(types.BillActionInserted))
	assert.Len(t, repo.records, 2)

	second, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count(types.BillActionInserted))
	assert.Equal(t, 2, second.Count(types.BillActionSkipped))
	assert.Len(t, repo.records, 2, "re-running the batch must not create duplicates")
}

func TestIngestNewBillsPlaceholderAndSlug(t *testing.T) {
	repo := newFakeBillRepo()
	svc := NewIngestService(repo, &fakeCongress{bills: sampleBills()}, nil, nil, IngestConfig{})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)

	record := repo.records["S3401-119"]
	require.NotNil(t, record)
	assert.Equal(t, "the-pathways-to-prosperity-act", record.URLSlug)
	assert.Contains(t, record.MarkdownBody, TrackedMarker)
	assert.Equal(t, "2025-11-02", record.UpdateDate)
	assert.NotZero(t, record.CreatedAt)
}

func TestIngestNewBillsChamberFilter(t *testing.T) {
	bills := sampleBills()
	bills = append(bills, types.CongressBill{
		BillID:        "HR1200-119",
		Title:         "Some House Bill",
		OriginChamber: "House",
		Type:          "HR",
		Congress:      119,
		UpdateDate:    "2025-11-03",
	})

	repo := newFakeBillRepo()
	svc := NewIngestService(repo, &fakeCongress{bills: bills}, nil, nil, IngestConfig{ChamberFilter: "Senate"})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.records, 2)
	assert.NotContains(t, repo.records, "HR1200-119")
}

func TestIngestNewBillsContinuesAfterInsertFailure(t *testing.T) {
	repo := newFakeBillRepo()
	repo.insertErr["S3401-119"] = errors.New("write failed")
	svc := NewIngestService(repo, &fakeCongress{bills: sampleBills()}, nil, nil, IngestConfig{})

	report, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.BillActionFailed))
	assert.Equal(t, 1, report.Count(types.BillActionInserted))
	assert.Contains(t, repo.records, "S3395-119")
}

func TestIngestNewBillsAttachesFunding(t *testing.T) {
	repo := newFakeBillRepo()
	funding := &fakeFunding{byName: map[string]*types.SponsorFunding{
		"Sen. Example, Jane [D-CA]": {TotalRaised: 1500000},
	}}
	svc := NewIngestService(repo, &fakeCongress{bills: sampleBills()}, funding, nil, IngestConfig{})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)

	record := repo.records["S3401-119"]
	require.NotNil(t, record)
	require.Len(t, record.SponsorData.Sponsors, 1)
	require.NotNil(t, record.SponsorData.Sponsors[0].Funding)
	assert.Equal(t, 1500000.0, record.SponsorData.Sponsors[0].Funding.TotalRaised)
}

func TestIngestNewBillsFallsBackToPlaceholderOnSynthesisError(t *testing.T) {
	repo := newFakeBillRepo()
	articles := &fakeArticles{err: errors.New("model unavailable")}
	svc := NewIngestService(repo, &fakeCongress{bills: sampleBills()}, nil, articles, IngestConfig{})

	report, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(types.BillActionInserted), "synthesis outage must not block publishing")
	assert.Contains(t, repo.records["S3401-119"].MarkdownBody, TrackedMarker)
}

func TestCheckUpdatesNoOpWhenDatesEqual(t *testing.T) {
	repo := newFakeBillRepo()
	congress := &fakeCongress{bills: sampleBills()}
	svc := NewIngestService(repo, congress, nil, nil, IngestConfig{})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	bodyBefore := repo.records["S3401-119"].MarkdownBody

	report, err := svc.CheckUpdates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(types.BillActionUnchanged))
	assert.Equal(t, 0, repo.applyCalls, "no write may occur when nothing drifted")
	assert.Equal(t, bodyBefore, repo.records["S3401-119"].MarkdownBody)
}

func TestCheckUpdatesAppendsNotice(t *testing.T) {
	repo := newFakeBillRepo()
	congress := &fakeCongress{bills: sampleBills()}
	svc := NewIngestService(repo, congress, nil, nil, IngestConfig{})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)
	bodyBefore := repo.records["S3401-119"].MarkdownBody

	congress.bills[0].UpdateDate = "2025-11-18"
	congress.bills[0].LatestAction = &types.LatestAction{Text: "Passed Senate"}

	report, err := svc.CheckUpdates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.BillActionUpdated))
	assert.Equal(t, 1, report.Count(types.BillActionUnchanged))

	record := repo.records["S3401-119"]
	assert.Greater(t, len(record.MarkdownBody), len(bodyBefore))
	assert.True(t, strings.HasPrefix(record.MarkdownBody, bodyBefore), "old body must remain a prefix of the new body")
	assert.Equal(t, "2025-11-18", record.UpdateDate)
	require.NotNil(t, record.LatestAction)
	assert.Equal(t, "Passed Senate", record.LatestAction.Text)
}

func TestCheckUpdatesNoticesAccumulate(t *testing.T) {
	repo := newFakeBillRepo()
	congress := &fakeCongress{bills: sampleBills()}
	svc := NewIngestService(repo, congress, nil, nil, IngestConfig{})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)

	congress.bills[0].UpdateDate = "2025-11-18"
	_, err = svc.CheckUpdates(context.Background())
	require.NoError(t, err)

	congress.bills[0].UpdateDate = "2025-11-25"
	_, err = svc.CheckUpdates(context.Background())
	require.NoError(t, err)

	body := repo.records["S3401-119"].MarkdownBody
	assert.Equal(t, 2, strings.Count(body, "UPDATE NOTICE"), "notices append, never replace")
}

func TestCheckUpdatesContinuesAfterPersistFailure(t *testing.T) {
	repo := newFakeBillRepo()
	congress := &fakeCongress{bills: sampleBills()}
	svc := NewIngestService(repo, congress, nil, nil, IngestConfig{})

	_, err := svc.IngestNewBills(context.Background())
	require.NoError(t, err)

	repo.applyErr["S3401-119"] = errors.New("write failed")
	congress.bills[0].UpdateDate = "2025-11-18"
	congress.bills[1].UpdateDate = "2025-11-19"

	report, err := svc.CheckUpdates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.BillActionFailed))
	assert.Equal(t, 1, report.Count(types.BillActionUpdated))
}

func TestRegenerateTrackedArticles(t *testing.T) {
	repo := newFakeBillRepo()
	congress := &fakeCongress{bills: sampleBills()}

	placeholderSvc := NewIngestService(repo, congress, nil, nil, IngestConfig{})
	_, err := placeholderSvc.IngestNewBills(context.Background())
	require.NoError(t, err)

	articles := &fakeArticles{}
	svc := NewIngestService(repo, congress, nil, articles, IngestConfig{})
	report, err := svc.RegenerateTrackedArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(types.BillActionUpdated))
	assert.Equal(t, 2, articles.calls)
	assert.NotContains(t, repo.records["S3401-119"].MarkdownBody, TrackedMarker)
}

func TestRegenerateTrackedArticlesRequiresService(t *testing.T) {
	repo := newFakeBillRepo()
	svc := NewIngestService(repo, &fakeCongress{}, nil, nil, IngestConfig{})
	_, err := svc.RegenerateTrackedArticles(context.Background())
	assert.Error(t, err)
}
