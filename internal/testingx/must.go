// Package testingx provides helpers for use with the testing package.
package testingx

import "testing"

// Must provides a concise way to handle returned errors in test setup that
// "should never fail".
//
// It MUST NOT be used to check the conditions under test, because the failure
// message it produces says nothing about what went wrong.
//
//	css := testingx.Must[[]byte](t)(os.ReadFile(result.Output))
func Must[T any](t *testing.T) func(v T, err error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatalf("Got: unexpected error: %s. Want: no error.", err)
		}
		return v
	}
}
