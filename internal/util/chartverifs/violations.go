package chartverifs

import "fmt"

// Violations maps the index of a configuration in a batch to its violation.
type Violations map[int]*Violation

func (v Violations) Rejected(index int) bool {
	_, ok := v[index]
	return ok
}

type Violation struct {
	Rejection
	Name string `json:"name"`
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Name, v.Message)
}

type Rejection struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func reject(rule string, format string, args ...any) *Rejection {
	return &Rejection{
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}
