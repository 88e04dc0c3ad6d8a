package domain

// TaskStatus represents the outcome of one task on one host.
type TaskStatus string

const (
	// StatusOK indicates the host was already in the declared state.
	StatusOK TaskStatus = "ok"
	// StatusChanged indicates the task converged the host and changed something.
	StatusChanged TaskStatus = "changed"
	// StatusFailed indicates the task failed on the host.
	StatusFailed TaskStatus = "failed"
	// StatusUnreachable indicates the host could not be contacted.
	StatusUnreachable TaskStatus = "unreachable"
	// StatusSkipped indicates the task was skipped on the host (e.g. a creates guard).
	StatusSkipped TaskStatus = "skipped"
)

// TaskResult is the structured result of one task on one host. Data
// carries module-specific extras (path, src, dest, checksum, ...).
type TaskResult struct {
	Host   InternedString
	Status TaskStatus
	Msg    string
	Data   map[string]any
}

// Changed reports whether the result mutated the host.
func (r *TaskResult) Changed() bool {
	return r.Status == StatusChanged
}

// Failed reports whether the result counts as a failure.
func (r *TaskResult) Failed() bool {
	return r.Status == StatusFailed
}

// OKResult builds an unchanged result with the given message.
func OKResult(msg string) *TaskResult {
	return &TaskResult{Status: StatusOK, Msg: msg, Data: map[string]any{}}
}

// ChangedResult builds a changed result with the given message.
func ChangedResult(msg string) *TaskResult {
	return &TaskResult{Status: StatusChanged, Msg: msg, Data: map[string]any{}}
}

// SkippedResult builds a skipped result with the given message.
func SkippedResult(msg string) *TaskResult {
	return &TaskResult{Status: StatusSkipped, Msg: msg, Data: map[string]any{}}
}
