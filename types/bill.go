package types

const (
	ChamberHouse  = "House"
	ChamberSenate = "Senate"
)

// LatestAction is the most recent recorded legislative action on a bill.
type LatestAction struct {
	Text       string `json:"text" bson:"text"`
	ActionDate string `json:"action_date" bson:"action_date"`
}

// Sponsor is a legislator attached to a bill, with resolved campaign-finance
// context where the lookup succeeded.
type Sponsor struct {
	Name    string          `json:"name" bson:"name"`
	Funding *SponsorFunding `json:"funding,omitempty" bson:"funding,omitempty"`
}

type SponsorData struct {
	Sponsors   []Sponsor `json:"sponsors" bson:"sponsors"`
	Cosponsors []Sponsor `json:"cosponsors" bson:"cosponsors"`
}

// BillRecord is the unit of persistence in the legislation collection.
// BillID is the external dedup key; URLSlug is derived once from the title at
// insert time and never regenerated, so published links stay valid.
type BillRecord struct {
	BillID          string        `json:"bill_id" bson:"bill_id"`
	Congress        int           `json:"congress" bson:"congress"`
	Type            string        `json:"type" bson:"type"`
	OriginChamber   string        `json:"origin_chamber" bson:"origin_chamber"`
	Title           string        `json:"title" bson:"title"`
	TLDR            string        `json:"tldr" bson:"tldr"`
	MarkdownBody    string        `json:"markdown_body" bson:"markdown_body"`
	SEOTitle        string        `json:"seo_title" bson:"seo_title"`
	MetaDescription string        `json:"meta_description" bson:"meta_description"`
	Keywords        []string      `json:"keywords" bson:"keywords"`
	URLSlug         string        `json:"url_slug" bson:"url_slug"`
	UpdateDate      string        `json:"update_date" bson:"update_date"`
	LatestAction    *LatestAction `json:"latest_action,omitempty" bson:"latest_action,omitempty"`
	CongressGovURL  string        `json:"congress_gov_url" bson:"congress_gov_url"`
	SponsorData     SponsorData   `json:"sponsor_data" bson:"sponsor_data"`
	CreatedAt       int64         `json:"created_at" bson:"created_at"`
	LastUpdated     int64         `json:"last_updated" bson:"last_updated"`
}

// StoredBillStatus is the identity+status projection read back in bulk during
// an update check.
type StoredBillStatus struct {
	BillID        string        `json:"bill_id" bson:"bill_id"`
	Title         string        `json:"title" bson:"title"`
	OriginChamber string        `json:"origin_chamber" bson:"origin_chamber"`
	UpdateDate    string        `json:"update_date" bson:"update_date"`
	LatestAction  *LatestAction `json:"latest_action,omitempty" bson:"latest_action,omitempty"`
	MarkdownBody  string        `json:"markdown_body" bson:"markdown_body"`
}

// CongressBill is a bill as returned by the legislative data source, before it
// becomes a BillRecord.
type CongressBill struct {
	BillID         string        `json:"bill_id"`
	Title          string        `json:"title"`
	OriginChamber  string        `json:"origin_chamber"`
	Type           string        `json:"type"`
	Number         string        `json:"number"`
	Congress       int           `json:"congress"`
	UpdateDate     string        `json:"update_date"`
	LatestAction   *LatestAction `json:"latest_action,omitempty"`
	Sponsors       []string      `json:"sponsors,omitempty"`
	Cosponsors     []string      `json:"cosponsors,omitempty"`
	CongressGovURL string        `json:"congress_gov_url"`
}
