package analyst

import (
	"time"

	"compliance-bot/internal/intake"
)

// referenceDateLayout is the day-month-year format the analysis
// capability expects.
const referenceDateLayout = "02-01-2006"

// Request is one immutable analysis request: the finalized answer
// snapshot plus the reference date all deadlines are calculated from.
type Request struct {
	Answers       []intake.Record
	ReferenceDate string
}

// NewRequest builds the request from a store snapshot and a reference
// date, formatted DD-MM-YYYY.
func NewRequest(snapshot []intake.Record, referenceDate time.Time) Request {
	return Request{
		Answers:       snapshot,
		ReferenceDate: referenceDate.Format(referenceDateLayout),
	}
}
