package domain

import "strings"

// Violations accumulates user-facing validation messages. Services collect
// every broken rule rather than failing on the first, so a form can be fixed
// in one round trip. It satisfies error so it travels the normal error path;
// handlers unpack it with errors.As and re-render the form.
type Violations []string

func (v Violations) Error() string {
	return strings.Join(v, "; ")
}

// Add records a violation.
func (v *Violations) Add(msg string) {
	*v = append(*v, msg)
}

// Err returns the collected violations as an error, or nil when none were
// recorded.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
