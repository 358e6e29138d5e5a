package classify

// PageState tracks where a page sits in the classification lifecycle.
type PageState string

const (
	StatePending     PageState = "PENDING"
	StateClassifying PageState = "CLASSIFYING"
	StateMatched     PageState = "MATCHED"
	StateUnmatched   PageState = "UNMATCHED"
	StateRateLimited PageState = "RATE_LIMITED"
	StateWaiting     PageState = "WAITING"
	StateFailed      PageState = "FAILED"
)

// Terminal reports whether a page in this state is done.
func (s PageState) Terminal() bool {
	switch s {
	case StateMatched, StateUnmatched, StateFailed:
		return true
	}
	return false
}

// PageResult is the terminal record for one page.
type PageResult struct {
	// Index is the zero-based page index.
	Index int
	// State is the terminal state the page reached.
	State PageState
	// Attempts is how many model calls the page consumed.
	Attempts int
	// Verdict holds the model's raw reply when one arrived.
	Verdict string
	// Err holds the terminal failure when State is FAILED.
	Err error
}

// Outcome is the result of classifying every page of a document for a role.
type Outcome struct {
	Role    Role
	Results []PageResult
}

// Matches returns the zero-based indices of matched pages in ascending order.
func (o *Outcome) Matches() []int {
	var indices []int
	for _, r := range o.Results {
		if r.State == StateMatched {
			indices = append(indices, r.Index)
		}
	}
	return indices
}

// Failures returns the pages that ended in FAILED.
func (o *Outcome) Failures() []PageResult {
	var failed []PageResult
	for _, r := range o.Results {
		if r.State == StateFailed {
			failed = append(failed, r)
		}
	}
	return failed
}
