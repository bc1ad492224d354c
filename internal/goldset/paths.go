package goldset

import (
	"strings"

	"github.com/vaultry/triage/internal/categories"
)

// pathRule binds folder-path keywords to an inferred category. Rules are
// evaluated in order and the first keyword hit wins, so more specific terms
// must precede generic ones where they could conflict (e.g. "tax" before
// "statement", "title" before "property").
type pathRule struct {
	keywords []string
	category categories.Category
}

var categoryRules = []pathRule{
	{[]string{"passport", "driver", "license", "id card", "identity"}, categories.Identity},
	{[]string{"tax", "irs", "w-2", "w2", "1099"}, categories.Tax},
	{[]string{"invoice"}, categories.Invoice},
	{[]string{"receipt", "expense"}, categories.Expense},
	{[]string{"paystub", "pay stub", "payroll", "salary", "income"}, categories.Income},
	{[]string{"medical", "health", "doctor", "prescription", "lab result"}, categories.Medical},
	{[]string{"insurance", "policy", "claim"}, categories.Insurance},
	{[]string{"deed", "mortgage", "lease", "property"}, categories.Property},
	{[]string{"vehicle", "car title", "auto", "registration"}, categories.Vehicle},
	{[]string{"contract", "legal", "court", "agreement"}, categories.Legal},
	{[]string{"bank", "statement", "financial"}, categories.Financial},
	{[]string{"offer letter", "employment", "hr"}, categories.Employment},
	{[]string{"transcript", "diploma", "school", "education"}, categories.Education},
	{[]string{"certificate", "certification"}, categories.Certification},
	{[]string{"incorporation", "llc", "business"}, categories.Business},
	{[]string{"itinerary", "travel", "boarding"}, categories.Travel},
	{[]string{"letter", "correspondence", "mail"}, categories.Correspondence},
	{[]string{"manual", "technical", "specification"}, categories.Technical},
	{[]string{"personal"}, categories.Personal},
}

// subtypeRule binds folder-path keywords to an inferred subtype. Same
// first-match-wins ordering as categoryRules.
type subtypeRule struct {
	keywords []string
	subtype  string
}

var subtypeRules = []subtypeRule{
	{[]string{"passport"}, "passport"},
	{[]string{"driver"}, "drivers_license"},
	{[]string{"w-2", "w2"}, "w2"},
	{[]string{"1099"}, "1099_form"},
	{[]string{"bank statement"}, "bank_statement"},
	{[]string{"paystub", "pay stub"}, "paystub"},
	{[]string{"receipt"}, "receipt"},
	{[]string{"invoice"}, "invoice"},
	{[]string{"prescription"}, "prescription"},
	{[]string{"policy"}, "insurance_policy"},
	{[]string{"claim"}, "insurance_claim"},
	{[]string{"mortgage"}, "mortgage"},
	{[]string{"lease"}, "lease"},
	{[]string{"deed"}, "deed"},
	{[]string{"contract"}, "contract"},
	{[]string{"transcript"}, "transcript"},
	{[]string{"diploma"}, "diploma"},
	{[]string{"car title", "vehicle title"}, "vehicle_title"},
	{[]string{"registration"}, "vehicle_registration"},
	{[]string{"itinerary"}, "itinerary"},
	{[]string{"boarding"}, "boarding_pass"},
}

// InferCategoryFromPath infers a document category from a folder's display
// path. Returns nil when no keyword matches. Used to back-fill the category
// when a user's correction is only "moved to folder X".
func InferCategoryFromPath(folderPath string) *categories.Category {
	path := strings.ToLower(folderPath)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(path, keyword) {
				c := rule.category
				return &c
			}
		}
	}
	return nil
}

// InferSubtypeFromPath infers a document subtype from a folder's display
// path. Returns nil when no keyword matches.
func InferSubtypeFromPath(folderPath string) *string {
	path := strings.ToLower(folderPath)
	for _, rule := range subtypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(path, keyword) {
				s := rule.subtype
				return &s
			}
		}
	}
	return nil
}
