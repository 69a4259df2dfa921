package analyst

// Result is the analysis capability's output. The report content may be
// returned directly or delivered as a named artifact the orchestrator
// reads back; Content takes precedence when both are set.
type Result struct {
	Content      string
	ArtifactPath string
}

// Capability produces a markdown compliance report from one analysis
// request. The call is long-running (on the order of minutes) and
// synchronous.
type Capability interface {
	Analyze(req Request) (Result, error)
}
