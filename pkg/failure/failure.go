// Package failure defines validation failures found in submitted returns.
//
// Failures are plain data. They are never Go errors: each pipeline stage
// returns them in its result, and pkg/messenger turns user failures into
// cell-addressed messages. Internal failures point to a fault of the
// extraction code rather than of the submitter, and pre-transformation
// failures carry the final text shown to the submitter.
package failure

import (
	"fmt"
	"strings"

	"github.com/gnames/tfingest/pkg/value"
)

// Kind classifies failures.
type Kind int

const (
	// Internal failures describe structural faults of extracted tables.
	Internal Kind = iota

	// User failures describe problems in submitted data.
	User

	// PreTransformation failures are found before extraction.
	PreTransformation
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case User:
		return "user"
	case PreTransformation:
		return "pre-transformation"
	}
	return "unknown"
}

// Failure is a single validation failure.
type Failure interface {
	Kind() Kind
	String() string
}

// Values is a snapshot of the cells of a failed row.
type Values map[string]value.Value

// Get returns the value of a column or Null.
func (v Values) Get(col string) value.Value {
	return v[col]
}

// Filter returns failures of the given kind.
func Filter(fs []Failure, kind Kind) []Failure {
	var res []Failure
	for _, f := range fs {
		if f.Kind() == kind {
			res = append(res, f)
		}
	}
	return res
}

// HasKind reports if any failure is of the given kind.
func HasKind(fs []Failure, kind Kind) bool {
	for _, f := range fs {
		if f.Kind() == kind {
			return true
		}
	}
	return false
}

// Strings returns string forms of failures.
func Strings(fs []Failure) []string {
	res := make([]string, len(fs))
	for i, f := range fs {
		res[i] = f.String()
	}
	return res
}

func quoteAll(ss []string) string {
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(res, ", ")
}
