package checks

// Kind distinguishes per-file items from the aggregate status item.
type Kind string

const (
	KindFile   Kind = "file"
	KindStatus Kind = "status"
)

// Item is one reported check: a source file or the aggregate exit status.
type Item struct {
	Name   string   `json:"name"`
	Path   string   `json:"path,omitempty"`
	Kind   Kind     `json:"kind"`
	Errors []string `json:"errors,omitempty"`
}

// CheckError is a failure reported by the checker: type errors attributed to
// a file, or a non-zero exit status. Its message is shown as-is.
type CheckError struct {
	Message string
}

func (e *CheckError) Error() string {
	return e.Message
}

// Warning is a non-fatal notice attached to an item or to the session.
type Warning struct {
	Item    string `json:"item,omitempty"`
	Message string `json:"message"`
}

// Outcome is the verdict for a single item.
type Outcome struct {
	Item     *Item     `json:"item"`
	Passed   bool      `json:"passed"`
	Err      error     `json:"-"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Message returns the failure text, or "" for a passing item.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
