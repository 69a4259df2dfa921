package prompts

import (
	"fmt"
	"strings"

	"compliance-bot/internal/intake"
	"compliance-bot/internal/search"
)

// Analyst builds the prompt for the compliance analysis capability: the
// analyst role, the intake data, the reference date and the fixed table
// schema the report must follow.
func Analyst(answers []intake.Record, referenceDate string, results []search.Result) string {
	var prompt strings.Builder

	prompt.WriteString("You are a top-tier regulatory compliance analyst specializing in Indian corporate law. ")
	prompt.WriteString("You are highly skilled at interpreting company-specific information to determine which sections of the Companies Act, 2013 apply. ")
	prompt.WriteString("You rely on official government sources and use the Ministry of Corporate Affairs website (https://www.mca.gov.in) as your only source of truth.\n\n")

	prompt.WriteString("You are provided with structured compliance intake data from a company and the current reference date. ")
	prompt.WriteString("Determine which legal compliance obligations apply to the company under the Companies Act, 2013.\n\n")

	prompt.WriteString(fmt.Sprintf("REFERENCE DATE: %s\n\n", referenceDate))

	prompt.WriteString("INTAKE DATA:\n")
	for _, rec := range answers {
		answer := "(not answered)"
		if rec.Valid {
			answer = rec.Value.String()
		}
		prompt.WriteString(fmt.Sprintf("%d. %s\n   Answer: %s\n", rec.Question.ID, rec.Question.Prompt, answer))
	}
	prompt.WriteString("\n")

	if len(results) > 0 {
		prompt.WriteString("OFFICIAL SOURCE EXTRACTS (mca.gov.in search results):\n")
		for _, r := range results {
			prompt.WriteString(fmt.Sprintf("- %s\n  %s\n  %s\n", r.Title, r.Link, r.Snippet))
		}
		prompt.WriteString("\n")
	}

	prompt.WriteString("Generate a well-structured Markdown table with a full compliance summary for the company. ")
	prompt.WriteString("Do not just list applicable compliances — also show inapplicable, missing, or error-prone cases to help the user correct them.\n\n")

	prompt.WriteString("The markdown table must contain the following columns:\n")
	prompt.WriteString("- Compliance Area (e.g., CSR Committee, Secretarial Audit)\n")
	prompt.WriteString("- Section (e.g., 135(1), 204(1))\n")
	prompt.WriteString("- Form (if applicable, e.g., MR-3, MGT-8)\n")
	prompt.WriteString("- Applicable (✅/❌)\n")
	prompt.WriteString("- Trigger or Reason (e.g., 'Net Profit > ₹5 Cr', or 'Does not meet XBRL condition')\n")
	prompt.WriteString("- Legal Deadline (e.g., 'within 180 days of financial year end')\n")
	prompt.WriteString(fmt.Sprintf("- Due Date (calculated from %s)\n", referenceDate))
	prompt.WriteString("- Status/Error (e.g., 'Compliant', 'Missing input: Paid-up Capital', 'Exempted due to Small Company')\n")
	prompt.WriteString("- Source (URL from mca.gov.in)\n\n")

	prompt.WriteString("You must handle the following cases:\n")
	prompt.WriteString("- ✅ Clearly applicable compliances with due dates.\n")
	prompt.WriteString("- ❌ Inapplicable ones with reasons why they do not apply.\n")
	prompt.WriteString("- ⚠️ Missing or invalid inputs (e.g., blank fields, ambiguous entries).\n")
	prompt.WriteString("- ❗ Any edge cases, exemptions (e.g., OPC, Section 8 Company), or potential legal risks.\n\n")

	prompt.WriteString("Important rules:\n")
	prompt.WriteString("- The table must be a clean, valid markdown table viewable on GitHub.\n")
	prompt.WriteString("- For each entry, provide a real mca.gov.in URL as the source.\n")
	prompt.WriteString("- Do not guess thresholds — use the official source extracts above.\n")
	prompt.WriteString(fmt.Sprintf("- Calculate all legal deadlines from the reference date (%s).\n", referenceDate))
	prompt.WriteString("- Do not omit entries — even inapplicable ones must be recorded.\n")

	return prompt.String()
}
