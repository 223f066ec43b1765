package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the kind of every fatal input or structure violation
var ErrValidation = errors.New("validation failed")

// Issue pinpoints one offending row or field
type Issue struct {
	Ref    string
	Field  string
	Value  string
	Reason string
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Ref != "" {
		b.WriteString(i.Ref)
		b.WriteString(": ")
	}
	if i.Field != "" {
		b.WriteString(i.Field)
		if i.Value != "" {
			fmt.Fprintf(&b, "=%q", i.Value)
		}
		b.WriteString(": ")
	}
	b.WriteString(i.Reason)
	return b.String()
}

// ValidationError collects every issue found by one pipeline stage.
// It is fatal: no artifact is produced once one is returned.
type ValidationError struct {
	Stage  string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	lines := make([]string, 0, len(e.Issues)+1)
	lines = append(lines, fmt.Sprintf("%s: %s: %d issue(s)", ErrValidation.Error(), e.Stage, len(e.Issues)))
	for _, issue := range e.Issues {
		lines = append(lines, "  "+issue.String())
	}
	return strings.Join(lines, "\n")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns nil when issues is empty
func NewValidationError(stage string, issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Stage: stage, Issues: issues}
}

// WarningKind classifies non-fatal findings
type WarningKind string

const (
	WarnDuplicateRecord       WarningKind = "duplicate_record"
	WarnComputationDegenerate WarningKind = "computation_degenerate"
	WarnApproximate           WarningKind = "approximate_correlation"
	WarnOutlier               WarningKind = "outlier"
)

// Warning is a non-fatal finding reported alongside a successful run
type Warning struct {
	Kind    WarningKind
	Ref     string
	Message string
}

func (w Warning) String() string {
	if w.Ref == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Ref, w.Message)
}
