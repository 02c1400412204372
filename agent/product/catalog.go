// Package product holds the static insurance product catalog. The catalog
// backs the /products endpoints and renders the knowledge-base section that
// is appended to the agent's system prompt.
package product

import "strings"

type Type string

const (
	TypeTerm      Type = "TERM"
	TypeWhole     Type = "WHOLE"
	TypeUniversal Type = "UNIVERSAL"
	TypeVariable  Type = "VARIABLE"
	TypeGroup     Type = "GROUP"
)

type Pricing struct {
	PremiumRange     string `json:"premiumRange"`
	PaymentFrequency string `json:"paymentFrequency"`
	Notes            string `json:"notes,omitempty"`
}

type Eligibility struct {
	MinAge       int      `json:"minAge"`
	MaxAge       int      `json:"maxAge"`
	Requirements []string `json:"requirements,omitempty"`
}

type Product struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	ProductType Type        `json:"productType"`
	Description string      `json:"description"`
	Features    []string    `json:"features"`
	Benefits    []string    `json:"benefits"`
	Pricing     Pricing     `json:"pricing"`
	Eligibility Eligibility `json:"eligibility"`
}

var catalog = []Product{
	{
		ProductID:   "term-life-001",
		ProductName: "Term Life Insurance",
		ProductType: TypeTerm,
		Description: "Pure protection for a fixed period of 10, 20 or 30 years with level premiums.",
		Features:    []string{"Level premiums for the chosen term", "Coverage from 100,000 to 5,000,000", "Convertible to permanent coverage before age 65"},
		Benefits:    []string{"Lowest cost per unit of coverage", "Simple to understand", "Fits income-replacement needs"},
		Pricing:     Pricing{PremiumRange: "20-150 per month", PaymentFrequency: "monthly or annual", Notes: "Premiums rise sharply on renewal after the term ends"},
		Eligibility: Eligibility{MinAge: 18, MaxAge: 65, Requirements: []string{"Health questionnaire", "Medical exam above 1,000,000 coverage"}},
	},
	{
		ProductID:   "whole-life-001",
		ProductName: "Whole Life Insurance",
		ProductType: TypeWhole,
		Description: "Lifetime protection with guaranteed cash value growth and fixed premiums.",
		Features:    []string{"Guaranteed death benefit for life", "Cash value grows at a guaranteed rate", "Eligible for annual dividends"},
		Benefits:    []string{"Premiums never increase", "Cash value can be borrowed against", "Estate planning tool"},
		Pricing:     Pricing{PremiumRange: "150-800 per month", PaymentFrequency: "monthly, annual or limited-pay"},
		Eligibility: Eligibility{MinAge: 0, MaxAge: 75, Requirements: []string{"Medical underwriting"}},
	},
	{
		ProductID:   "universal-life-001",
		ProductName: "Universal Life Insurance",
		ProductType: TypeUniversal,
		Description: "Permanent coverage with flexible premiums and an adjustable death benefit.",
		Features:    []string{"Flexible premium payments", "Adjustable death benefit", "Cash value earns current interest rates"},
		Benefits:    []string{"Adapts to changing income", "Transparent cost structure", "Tax-deferred growth"},
		Pricing:     Pricing{PremiumRange: "100-600 per month", PaymentFrequency: "flexible", Notes: "Underfunding can lapse the policy"},
		Eligibility: Eligibility{MinAge: 18, MaxAge: 70, Requirements: []string{"Medical underwriting", "Financial justification above 2,000,000"}},
	},
	{
		ProductID:   "variable-life-001",
		ProductName: "Variable Life Insurance",
		ProductType: TypeVariable,
		Description: "Permanent coverage where cash value is invested in market sub-accounts.",
		Features:    []string{"Investment sub-account choices", "Potential for higher cash value growth", "Guaranteed minimum death benefit options"},
		Benefits:    []string{"Market upside inside a policy", "Tax-deferred investment growth"},
		Pricing:     Pricing{PremiumRange: "200-1,000 per month", PaymentFrequency: "monthly or annual", Notes: "Cash value can fall with the market"},
		Eligibility: Eligibility{MinAge: 21, MaxAge: 65, Requirements: []string{"Medical underwriting", "Investor suitability check"}},
	},
	{
		ProductID:   "group-life-001",
		ProductName: "Group Life Insurance",
		ProductType: TypeGroup,
		Description: "Employer-sponsored coverage for teams of five or more, often without medical exams.",
		Features:    []string{"Guaranteed issue up to a base amount", "Optional supplemental coverage", "Portable on leaving the employer"},
		Benefits:    []string{"No medical exam for base coverage", "Payroll-deducted premiums", "Covers every eligible employee"},
		Pricing:     Pricing{PremiumRange: "5-50 per employee per month", PaymentFrequency: "monthly via payroll"},
		Eligibility: Eligibility{MinAge: 18, MaxAge: 70, Requirements: []string{"Active employment", "Minimum group size of five"}},
	},
}

// All returns the full catalog.
func All() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}

// ByType returns the product of the given type.
func ByType(t Type) (Product, bool) {
	for _, p := range catalog {
		if p.ProductType == t {
			return p, true
		}
	}
	return Product{}, false
}

// Search matches the keyword against name, description and features,
// case-insensitively.
func Search(keyword string) []Product {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}

	var out []Product
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.ProductName), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			featuresContain(p.Features, needle) {
			out = append(out, p)
		}
	}
	return out
}

func featuresContain(features []string, needle string) bool {
	for _, f := range features {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// KnowledgeBase renders the catalog as text for the agent's system prompt.
func KnowledgeBase() string {
	var b strings.Builder
	for i, p := range catalog {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("### " + p.ProductName + "\n")
		b.WriteString(p.Description + "\n")
		b.WriteString("Features: " + strings.Join(p.Features, "; ") + "\n")
		b.WriteString("Benefits: " + strings.Join(p.Benefits, "; ") + "\n")
		b.WriteString("Pricing: " + p.Pricing.PremiumRange + " (" + p.Pricing.PaymentFrequency + ")\n")
	}
	return b.String()
}
