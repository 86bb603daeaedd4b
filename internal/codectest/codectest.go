// Package codectest provides a test suite for codec implementations.
package codectest

import (
	"testing"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/fixtures"
	"github.com/chaisql/asn1/internal/testutil"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestFormat runs a list of tests on the given format.
func TestFormat(t *testing.T, f asn1.Format) {
	tests := []struct {
		name string
		test func(*testing.T, asn1.Format)
	}{
		{"RoundTrip", testRoundTrip},
		{"Choice", testChoice},
		{"Defaults", testDefaults},
		{"ExtensionAdditions", testExtensionAdditions},
		{"ExtensibleDecoding", testExtensibleDecoding},
		{"Constraints", testConstraints},
		{"Truncated", testTruncated},
		{"Concurrent", testConcurrent},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.test(t, f)
		})
	}
}

// roundTrip encodes v, decodes the result into got and compares both values.
func roundTrip(t *testing.T, f asn1.Format, v asn1.Encodable, got fixtures.Value) {
	t.Helper()

	data, err := f.Marshal(v)
	require.NoError(t, err)

	err = f.Unmarshal(data, got)
	require.NoError(t, err, "decoding %q", data)

	testutil.RequireEqual(t, v, got)
}

func testRoundTrip(t *testing.T, f asn1.Format) {
	for _, name := range fixtures.Names() {
		t.Run(name, func(t *testing.T) {
			entry, _ := fixtures.Lookup(name)
			roundTrip(t, f, entry.Sample(), entry.New())
		})
	}
}

func testChoice(t *testing.T, f asn1.Format) {
	yes := asn1.Boolean(true)
	roundTrip(t, f, &fixtures.TestChoice{Test2: &yes}, new(fixtures.TestChoice))

	_, err := f.Marshal(fixtures.TestChoice{})
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)

	one := asn1.NewInteger(1)
	_, err = f.Marshal(fixtures.TestChoice{Test1: &one, Test2: &yes})
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)
}

func testDefaults(t *testing.T, f asn1.Format) {
	defaults := fixtures.NewSettings()
	roundTrip(t, f, &defaults, new(fixtures.Settings))

	withDefaults := fixtures.SampleSettings()
	withDefaults.Verbose = false
	withDefaults.Level = asn1.NewInteger(5)
	short, err := f.Marshal(withDefaults)
	require.NoError(t, err)

	withValues := fixtures.SampleSettings()
	withValues.Verbose = true
	withValues.Level = asn1.NewInteger(6)
	long, err := f.Marshal(withValues)
	require.NoError(t, err)

	require.Less(t, len(short), len(long))

	record := fixtures.SamplePersonnelRecord()
	record.Children = nil
	roundTrip(t, f, &record, new(fixtures.PersonnelRecord))
}

func testExtensionAdditions(t *testing.T, f asn1.Format) {
	tests := []struct {
		name   string
		modify func(*fixtures.Settings)
	}{
		{"None", func(s *fixtures.Settings) { s.Timeout, s.Retry = nil, nil }},
		{"NoTimeout", func(s *fixtures.Settings) { s.Timeout = nil }},
		{"NoGroup", func(s *fixtures.Settings) { s.Retry = nil }},
		{"PartialGroup", func(s *fixtures.Settings) { s.Retry.Backoff = nil }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := fixtures.SampleSettings()
			test.modify(&s)
			roundTrip(t, f, &s, new(fixtures.Settings))
		})
	}
}

func testExtensibleDecoding(t *testing.T, f asn1.Format) {
	data, err := f.Marshal(fixtures.SampleSettings())
	require.NoError(t, err)

	var got fixtures.SettingsV1
	err = f.Unmarshal(data, &got)
	require.NoError(t, err)
	testutil.RequireEqual(t, fixtures.SampleSettingsV1(), got)

	data, err = f.Marshal(fixtures.SampleSettingsV1())
	require.NoError(t, err)

	var s fixtures.Settings
	err = f.Unmarshal(data, &s)
	require.NoError(t, err)
	require.Nil(t, s.Timeout)
	require.Nil(t, s.Retry)
}

func testConstraints(t *testing.T, f asn1.Format) {
	s := fixtures.SampleSettings()
	s.Level = asn1.NewInteger(11)

	_, err := f.Marshal(s)
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)

	var encErr *asn1.EncodeError
	require.True(t, errors.As(err, &encErr))
	require.Equal(t, f.Codec(), encErr.Codec)

	r := fixtures.SamplePersonnelRecord()
	r.DateOfHire = "1971"
	_, err = f.Marshal(r)
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)
}

func testTruncated(t *testing.T, f asn1.Format) {
	data, err := f.Marshal(fixtures.SamplePersonnelRecord())
	require.NoError(t, err)

	var r fixtures.PersonnelRecord
	err = f.Unmarshal(data[:len(data)/2], &r)
	require.Error(t, err)

	err = f.Unmarshal(nil, &r)
	require.Error(t, err)
}

func testConcurrent(t *testing.T, f asn1.Format) {
	var g errgroup.Group

	for i := 0; i < 8; i++ {
		for _, name := range fixtures.Names() {
			entry, _ := fixtures.Lookup(name)
			g.Go(func() error {
				want := entry.Sample()
				data, err := f.Marshal(want)
				if err != nil {
					return err
				}

				got := entry.New()
				if err := f.Unmarshal(data, got); err != nil {
					return err
				}
				if data2, err := f.Marshal(got); err != nil || string(data2) != string(data) {
					return errors.Newf("%s: unstable encoding", entry.Name)
				}
				return nil
			})
		}
	}

	require.NoError(t, g.Wait())
}
