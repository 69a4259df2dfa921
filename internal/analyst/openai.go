package analyst

import (
	"fmt"
	"log"

	"compliance-bot/internal/api"
	"compliance-bot/internal/prompts"
	"compliance-bot/internal/search"
)

// complianceQueries are the threshold lookups issued before analysis to
// ground the report in official sources.
var complianceQueries = []string{
	"site:mca.gov.in Companies Act 2013 CSR applicability section 135 thresholds",
	"site:mca.gov.in Companies Act 2013 annual return MGT-7 filing deadline",
	"site:mca.gov.in Companies Act 2013 XBRL filing applicability AOC-4",
	"site:mca.gov.in Companies Act 2013 secretarial audit MR-3 applicability",
	"site:mca.gov.in Companies Act 2013 small company OPC exemptions",
}

// OpenAICapability is the LLM-backed analysis capability: it grounds the
// request with web search over official MCA sources, then asks the model
// for the full markdown compliance report.
type OpenAICapability struct {
	client *api.Client
	search *search.Client
}

// NewOpenAICapability creates the capability.
func NewOpenAICapability(client *api.Client, searchClient *search.Client) *OpenAICapability {
	return &OpenAICapability{client: client, search: searchClient}
}

// Analyze dispatches one analysis request and returns the raw markdown
// report. Search failures are logged but not fatal: the model is simply
// asked without the extracts.
func (c *OpenAICapability) Analyze(req Request) (Result, error) {
	var results []search.Result
	for _, query := range complianceQueries {
		found, err := c.search.Search(query)
		if err != nil {
			log.Printf("compliance lookup failed for %q: %v", query, err)
			continue
		}
		// A couple of extracts per area is plenty of prompt context.
		if len(found) > 2 {
			found = found[:2]
		}
		results = append(results, found...)
	}

	prompt := prompts.Analyst(req.Answers, req.ReferenceDate, results)

	content, err := c.client.Complete([]api.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return Result{}, fmt.Errorf("error generating compliance report: %w", err)
	}

	return Result{Content: content}, nil
}
