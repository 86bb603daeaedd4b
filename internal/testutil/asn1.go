// Package testutil provides assertions shared by the tests of the codecs.
package testutil

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// RequireEqual fails the test if want and got differ, printing a diff.
// Nil and empty slices are considered equal.
func RequireEqual(t testing.TB, want, got any) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		require.Failf(t, "mismatched values, (-want, +got)", "%s", diff)
	}
}

// RequireErrorIs fails the test if err doesn't match target.
// The stack trace of err is logged on failure.
func RequireErrorIs(t testing.TB, err error, target error) {
	t.Helper()

	if errors.Is(err, target) {
		return
	}

	t.Logf("Expected error to be %v but got %v instead", target, err)
	if err != nil {
		t.Logf("Stacktrace:\n%+v", err)
	}
	t.FailNow()
}
