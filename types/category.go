package types

// Category is a static taxonomy entry. Color is a display hint only.
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Color       string   `json:"color"`
}

// DefaultCategories is the fixed topical taxonomy. Treated as immutable
// reference data: loaded once and passed to the categorizer, never mutated.
var DefaultCategories = []Category{
	{
		ID:          "technology-law",
		Name:        "Technology Law",
		Description: "AI, cybersecurity, social media, and digital policy",
		Keywords:    []string{"artificial intelligence", "ai", "cybersecurity", "cyber security", "social media", "data privacy", "online platforms", "big tech", "algorithm", "software", "computing", "digital", "internet", "technology", "tech"},
		Color:       "blue",
	},
	{
		ID:          "national-security",
		Name:        "National Security",
		Description: "Defense, intelligence, homeland security, and foreign policy",
		Keywords:    []string{"defense", "military", "intelligence", "terrorism", "homeland security", "pentagon", "national defense", "armed forces", "defense authorization", "military spending", "foreign policy"},
		Color:       "red",
	},
	{
		ID:          "healthcare",
		Name:        "Healthcare",
		Description: "Health policy, Medicare, Medicaid, and medical legislation",
		Keywords:    []string{"healthcare", "health care", "medicare", "medicaid", "hospital", "pharmaceutical", "fda", "disease", "treatment", "medical", "health insurance", "public health"},
		Color:       "green",
	},
	{
		ID:          "economy",
		Name:        "Economy",
		Description: "Taxes, finance, banking, and economic policy",
		Keywords:    []string{"tax", "taxes", "economy", "financial", "banking", "finance", "economic", "budget", "spending", "debt", "inflation", "irs", "tax code", "economic growth"},
		Color:       "amber",
	},
	{
		ID:          "energy",
		Name:        "Energy",
		Description: "Climate, environment, oil, gas, and renewable energy",
		Keywords:    []string{"energy", "climate", "environment", "oil", "gas", "renewable", "solar", "wind", "emissions", "carbon", "epa", "environmental protection", "clean energy"},
		Color:       "emerald",
	},
	{
		ID:          "immigration",
		Name:        "Immigration",
		Description: "Border security, visas, asylum, and immigration policy",
		Keywords:    []string{"immigration", "border", "visa", "asylum", "citizenship", "deportation", "migrant", "customs", "border security", "immigration reform"},
		Color:       "purple",
	},
	{
		ID:          "education",
		Name:        "Education",
		Description: "Schools, student loans, and education policy",
		Keywords:    []string{"education", "school", "student", "student loans", "college", "university", "loan", "teacher", "curriculum", "higher education", "student aid", "pell grant"},
		Color:       "indigo",
	},
	{
		ID:          "infrastructure",
		Name:        "Infrastructure",
		Description: "Transportation, broadband, and public works",
		Keywords:    []string{"infrastructure", "transportation", "road", "bridge", "broadband", "highway", "rail", "airport", "public works", "transit", "high-speed rail"},
		Color:       "orange",
	},
}

// GetCategoryByID looks an entry up in the given taxonomy.
func GetCategoryByID(categories []Category, id string) (Category, bool) {
	for _, cat := range categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
