package models

// ItemStatus is the outcome of generating a test for one module
type ItemStatus int

const (
	StatusGenerated ItemStatus = iota // a new test file was written
	StatusExisting                    // the test file already existed and was left alone
	StatusSkipped                     // the module is excluded by the skip policy
	StatusFailed                      // reading, rendering or writing failed
)

// String returns the string representation of the status
func (s ItemStatus) String() string {
	switch s {
	case StatusGenerated:
		return "generated"
	case StatusExisting:
		return "existing"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ItemResult records what happened to one module in a batch
type ItemResult struct {
	Path     string     // module path as given
	TestPath string     // destination test path; empty when skipped or when analysis failed
	Status   ItemStatus // outcome
	Err      error      // set only when Status is StatusFailed
}

// BatchResult collects per-module outcomes in processing order
type BatchResult struct {
	Items []ItemResult
}

// Add appends an item result
func (b *BatchResult) Add(item ItemResult) {
	b.Items = append(b.Items, item)
}

// Count returns how many items have the given status
func (b *BatchResult) Count(status ItemStatus) int {
	n := 0
	for _, item := range b.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the failed items
func (b *BatchResult) Failed() []ItemResult {
	var failed []ItemResult
	for _, item := range b.Items {
		if item.Status == StatusFailed {
			failed = append(failed, item)
		}
	}
	return failed
}

// HasFailures reports whether any item failed
func (b *BatchResult) HasFailures() bool {
	return b.Count(StatusFailed) > 0
}
