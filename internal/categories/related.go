package categories

// related maps each category to categories whose documents are frequently
// confused with it. The similarity engine widens its gold set comparison to
// these neighbors so a strong match in a related category can surface a
// disagreement with the first-pass classifier.
var related = map[Category][]Category{
	Identity:       {Personal, Legal},
	Financial:      {Income, Expense, Invoice, Tax},
	Tax:            {Financial, Income},
	Income:         {Financial, Employment, Tax},
	Expense:        {Financial, Invoice},
	Invoice:        {Expense, Financial, Business},
	Medical:        {Insurance, Personal},
	Insurance:      {Medical, Property, Vehicle},
	Legal:          {Property, Business, Correspondence},
	Property:       {Legal, Insurance, Financial},
	Business:       {Legal, Invoice, Employment},
	Employment:     {Income, Business, Certification},
	Education:      {Certification, Personal},
	Certification:  {Education, Employment},
	Correspondence: {Legal, Personal},
	Vehicle:        {Insurance, Property},
	Personal:       {Identity, Correspondence},
	Travel:         {Personal, Expense},
	Technical:      {Business, Correspondence},
}

// Related returns the related-category set for c. Categories without an
// adjacency entry (needs_review, other) return nil.
func Related(c Category) []Category {
	return related[c]
}
