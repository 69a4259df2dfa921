package catalog

// companyTypes are the recognized company classifications under the
// Companies Act, 2013.
var companyTypes = []string{
	"Private", "Public", "Listed", "Unlisted", "Government",
	"OPC", "Section 8", "Dormant", "Small",
}

// Default returns the built-in Companies Act, 2013 intake catalog, used
// when no catalog file is configured.
func Default() *Catalog {
	cat, err := New([]Question{
		{ID: 1, Prompt: "What is the type of your company?", Shape: ShapeChoice, Options: companyTypes},
		{ID: 2, Prompt: "Is your company listed on a stock exchange?", Shape: ShapeYesNo},
		{ID: 3, Prompt: "Is your company a Small Company under the Companies Act?", Shape: ShapeYesNoUnsure},
		{ID: 4, Prompt: "Is your company a One Person Company (OPC)?", Shape: ShapeYesNo},
		{ID: 5, Prompt: "Is your company a Section 8 (Not-for-profit) Company?", Shape: ShapeYesNo},
		{ID: 6, Prompt: "Is your company a Holding or Subsidiary of another company?", Shape: ShapeYesNo},
		{ID: 7, Prompt: "What is your company's Paid-up Share Capital? (in ₹ Crores)", Shape: ShapeNumeric},
		{ID: 8, Prompt: "What is your company's Turnover? (in ₹ Crores)", Shape: ShapeNumeric},
		{ID: 9, Prompt: "What is your company's Net Profit (Profit Before Tax)? (in ₹ Crores)", Shape: ShapeNumeric},
		{ID: 10, Prompt: "What is the total amount of your borrowings from banks or public financial institutions? (in ₹ Crores)", Shape: ShapeNumeric},
		{ID: 11, Prompt: "Do you have any public deposits outstanding?", Shape: ShapeYesNo},
		{ID: 12, Prompt: "Are there any debentures issued and outstanding?", Shape: ShapeYesNo},
		{ID: 13, Prompt: "How many shareholders / debenture holders / other security holders does your company have?", Shape: ShapeNumeric},
		{ID: 14, Prompt: "Do you already maintain e-form records electronically under section 120?", Shape: ShapeYesNo},
		{ID: 15, Prompt: "Does your company already file financials in XBRL format?", Shape: ShapeYesNoUnsure},
		{ID: 16, Prompt: "What is the total number of employees in your company?", Shape: ShapeNumeric},
	})
	if err != nil {
		// The built-in catalog is validated by tests; a failure here is a bug.
		panic(err)
	}
	return cat
}
