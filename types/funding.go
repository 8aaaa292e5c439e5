package types

// IndustryFunding is a per-industry contribution breakdown entry. The finance
// registry integration does not populate it yet.
type IndustryFunding struct {
	Name   string  `json:"name" bson:"name"`
	Amount float64 `json:"amount" bson:"amount"`
}

// SponsorFunding is best-effort campaign-finance context for a sponsor.
// TotalRaised is the maximum single-cycle receipts observed across the most
// recent reporting cycles, not a lifetime sum.
type SponsorFunding struct {
	TotalRaised   float64           `json:"total_raised" bson:"total_raised"`
	TopIndustries []IndustryFunding `json:"top_industries" bson:"top_industries"`
}
