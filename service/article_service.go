package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/thedailylaw/dailylaw-be/types"
)

// TrackedMarker appears in placeholder bodies and identifies bills still
// waiting for a full synthesized article.
const TrackedMarker = "currently being tracked by The Daily Law"

// ArticleService synthesizes a plain-language article for a bill.
type ArticleService interface {
	GenerateArticle(ctx context.Context, bill types.CongressBill, sponsors types.SponsorData) (*types.ArticleContent, error)
}

const articleSystemPrompt = `You are a legal affairs writer for The Daily Law, a site that explains U.S. legislation in plain language. Respond with a single JSON object with exactly these keys: "title", "seo_title", "meta_description", "markdown_body", "tldr", "keywords" (array of strings). The markdown_body is a complete article with Overview, Key Provisions, Potential Impact, Current Status and Analysis sections. Do not include any text outside the JSON object.`

func buildArticlePrompt(bill types.CongressBill, sponsors types.SponsorData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an article about the following bill.\n\n")
	fmt.Fprintf(&b, "Bill ID: %s\nTitle: %s\nChamber: %s\nCongress: %d\nUpdate Date: %s\n", bill.BillID, bill.Title, bill.OriginChamber, bill.Congress, bill.UpdateDate)
	if bill.LatestAction != nil {
		fmt.Fprintf(&b, "Latest Action: %s\n", bill.LatestAction.Text)
	}
	for _, sponsor := range sponsors.Sponsors {
		if sponsor.Funding != nil {
			fmt.Fprintf(&b, "Sponsor: %s (peak cycle fundraising: $%.0f)\n", sponsor.Name, sponsor.Funding.TotalRaised)
		} else {
			fmt.Fprintf(&b, "Sponsor: %s\n", sponsor.Name)
		}
	}
	fmt.Fprintf(&b, "Congress.gov URL: %s\n", bill.CongressGovURL)
	return b.String()
}

// parseArticleJSON decodes a model response into ArticleContent, tolerating
// fenced code blocks around the JSON object.
func parseArticleJSON(raw string) (*types.ArticleContent, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var content types.ArticleContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("parse article response: %w", err)
	}
	if content.Title == "" || content.MarkdownBody == "" {
		return nil, errors.New("article response missing title or body")
	}
	return &content, nil
}

// PlaceholderArticle builds the minimal record content used when synthesis is
// deferred or unavailable. End readers see a tracking stub, never an error.
func PlaceholderArticle(bill types.CongressBill) *types.ArticleContent {
	title := bill.Title
	shortTitle := title
	if len(shortTitle) > 100 {
		shortTitle = shortTitle[:100]
	}
	latestAction := bill.UpdateDate
	if bill.LatestAction != nil && bill.LatestAction.Text != "" {
		latestAction = bill.LatestAction.Text
	}

	body := fmt.Sprintf(`# %s

**%s Bill Analysis**

This bill is %s. Full analysis will be available soon.

**Bill Details:**
- Bill ID: %s
- Chamber: %s
- Congress: %d
- Latest Action: %s

**Congress.gov URL:** %s`,
		title, bill.OriginChamber, TrackedMarker, bill.BillID, bill.OriginChamber, bill.Congress, latestAction, bill.CongressGovURL)

	return &types.ArticleContent{
		Title:           title,
		SEOTitle:        fmt.Sprintf("%s (%s) - %s Bill | The Daily Law", title, bill.BillID, bill.OriginChamber),
		MetaDescription: fmt.Sprintf("Track %s, a %s bill in the %dth Congress. Get updates on legislative progress and analysis.", title, bill.OriginChamber, bill.Congress),
		MarkdownBody:    body,
		TLDR:            fmt.Sprintf("%s bill %s titled %q is currently under consideration in the %dth Congress.", bill.OriginChamber, bill.BillID, shortTitle, bill.Congress),
		Keywords:        []string{strings.ToLower(bill.OriginChamber), "legislation", strings.ToLower(bill.Type), "congress"},
	}
}
