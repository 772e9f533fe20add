// Package testhelpers provides small assertion helpers shared by the command tests.
package testhelpers

import (
	"reflect"
	"testing"
)

// CommandAnnotationTest is one expected cobra command annotation.
type CommandAnnotationTest struct {
	Key      string
	Expected string
}

// AssertEqual fails the test if got != want.
func AssertEqual[T comparable](t *testing.T, want, got T) {
	t.Helper()
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// AssertNotNil fails the test if v is nil, including typed nil pointers, funcs, maps and slices.
func AssertNotNil(t *testing.T, v any) {
	t.Helper()
	if isNil(v) {
		t.Errorf("Expected non-nil value, got nil")
	}
}

// AssertTrue fails the test with msg if cond is false.
func AssertTrue(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Error(msg)
	}
}

// TestCommandAnnotations checks a cobra command's annotations against the expected values.
func TestCommandAnnotations(t *testing.T, annotations map[string]string, tests []CommandAnnotationTest) {
	t.Helper()
	for _, tt := range tests {
		got, ok := annotations[tt.Key]
		if !ok {
			t.Errorf("Expected annotation %q to be set", tt.Key)
			continue
		}
		if got != tt.Expected {
			t.Errorf("Expected annotation %q to be %q, got %q", tt.Key, tt.Expected, got)
		}
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
