// Package schema validates untyped JSON documents against the minimal
// required-field shapes of the three document kinds the editor consumes:
// curriculum graphs, research manifests and research patches.
//
// Validation is structural only: presence, type and non-emptiness of required
// fields. Unknown fields are ignored. Array elements are validated
// independently and indexed in their issue path (e.g. "add_edges[2].source");
// a malformed element never short-circuits validation of its siblings.
package schema

import (
	"fmt"
	"math"
	"strings"
)

// Issue describes one structural problem found in a document.
type Issue struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Issue codes.
const (
	CodeInvalidType  = "invalid_type"
	CodeMissingField = "missing_field"
	CodeEmptyField   = "empty_field"
	CodeInvalidValue = "invalid_value"
)

// ValidationError aggregates the issues that made a document unparseable.
type ValidationError struct {
	Message string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	paths := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		paths = append(paths, issue.Path)
	}
	return fmt.Sprintf("%v (%v)", e.Message, strings.Join(paths, ", "))
}

// Result is the explicit success/failure value returned by the Parse*Safe
// variants for callers that prefer a tagged result over an error.
type Result[T any] struct {
	OK    bool
	Value T
	Err   *ValidationError
}

func ok[T any](value T) Result[T] {
	return Result[T]{OK: true, Value: value}
}

func fail[T any](err error) Result[T] {
	var verr *ValidationError
	if e, isValidation := err.(*ValidationError); isValidation {
		verr = e
	} else {
		verr = &ValidationError{Message: err.Error()}
	}
	return Result[T]{OK: false, Err: verr}
}

func issue(code, path, message string) Issue {
	return Issue{Code: code, Path: path, Message: message}
}

func asObject(doc any) (map[string]any, bool) {
	m, isObject := doc.(map[string]any)
	return m, isObject
}

// stringField reads a field as a string. The second return reports presence,
// the third whether the present value actually is a string.
func stringField(m map[string]any, key string) (string, bool, bool) {
	raw, present := m[key]
	if !present {
		return "", false, false
	}
	s, isString := raw.(string)
	return s, true, isString
}

// requireString validates a required, non-empty (after trimming) string field
// and appends issues for violations.
func requireString(m map[string]any, key, path string, issues *[]Issue) (string, bool) {
	value, present, isString := stringField(m, key)
	switch {
	case !present:
		*issues = append(*issues, issue(CodeMissingField, path, fmt.Sprintf("required field %q is missing", key)))
		return "", false
	case !isString:
		*issues = append(*issues, issue(CodeInvalidType, path, fmt.Sprintf("field %q must be a string", key)))
		return "", false
	case strings.TrimSpace(value) == "":
		*issues = append(*issues, issue(CodeEmptyField, path, fmt.Sprintf("field %q must not be empty", key)))
		return "", false
	}
	return value, true
}

// optionalString validates that a field, when present, is a string.
func optionalString(m map[string]any, key, path string, issues *[]Issue) string {
	value, present, isString := stringField(m, key)
	if present && !isString {
		*issues = append(*issues, issue(CodeInvalidType, path, fmt.Sprintf("field %q must be a string", key)))
		return ""
	}
	return value
}

// optionalFiniteNumber validates that a field, when present, is a finite number.
func optionalFiniteNumber(m map[string]any, key, path string, issues *[]Issue) *float64 {
	raw, present := m[key]
	if !present {
		return nil
	}
	n, isNumber := raw.(float64)
	if !isNumber {
		*issues = append(*issues, issue(CodeInvalidType, path, fmt.Sprintf("field %q must be a number", key)))
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		*issues = append(*issues, issue(CodeInvalidValue, path, fmt.Sprintf("field %q must be finite", key)))
		return nil
	}
	return &n
}
