package categories

// requiredFields maps each category to the logical field names that count as
// corroborating extraction evidence. The OCR quality gate treats a document
// as evidenced when at least one listed field is present — an OR-of-any
// check, not a completeness requirement. Field names are the canonical
// (normalized) names produced by the extraction package.
var requiredFields = map[Category][]string{
	Identity:       {"personName", "documentNumber", "fullName"},
	Financial:      {"accountNumber", "amount", "institutionName"},
	Tax:            {"taxYear", "amount", "employerName", "taxpayerName"},
	Income:         {"amount", "employerName", "payPeriod"},
	Expense:        {"amount", "vendorName", "date"},
	Invoice:        {"amount", "invoiceNumber", "vendorName", "dueDate"},
	Medical:        {"providerName", "patientName", "date"},
	Insurance:      {"policyNumber", "insurerName", "coverageAmount"},
	Legal:          {"partyName", "caseNumber", "effectiveDate"},
	Property:       {"propertyAddress", "parcelNumber", "amount"},
	Business:       {"businessName", "registrationNumber", "amount"},
	Employment:     {"employerName", "personName", "startDate"},
	Education:      {"institutionName", "studentName", "completionDate"},
	Certification:  {"certificationName", "issuerName", "issueDate"},
	Correspondence: {"senderName", "recipientName", "date"},
	Vehicle:        {"vin", "licensePlate", "makeModel"},
	Personal:       {"personName", "date"},
	Travel:         {"travelerName", "destination", "travelDate"},
	Technical:      {"documentTitle", "version", "date"},
}

// RequiredFields returns the candidate evidence field names for c.
// Returns nil for categories with no field expectations (needs_review, other);
// callers fall back to generic identifier-or-date evidence.
func RequiredFields(c Category) []string {
	return requiredFields[c]
}
