package jer_test

import (
	"testing"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/codectest"
	"github.com/chaisql/asn1/internal/fixtures"
	"github.com/chaisql/asn1/internal/testutil"
	"github.com/chaisql/asn1/jer"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	codectest.TestFormat(t, jer.Format)
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name string
		v    asn1.Encodable
		want string
	}{
		{"boolean", asn1.Boolean(true), `true`},
		{"integer", asn1.NewInteger(-1235352), `-1235352`},
		{"bit string", asn1.NewBitString(true, false, true, false), `{"value":"A0","length":4}`},
		{"empty bit string", asn1.BitString{}, `{"value":"","length":0}`},
		{"octet string", asn1.OctetString{0x01, 0xFF}, `"01FF"`},
		{"null", asn1.Null{}, `null`},
		{"oid", asn1.ObjectIdentifier{1, 2, 840, 113549}, `"1.2.840.113549"`},
		{"enumerated", fixtures.ColorBlue, `"blue"`},
		{"string", asn1.UTF8String("a \"quoted\"\nline"), `"a \"quoted\"\nline"`},
		{"choice", fixtures.SampleTestChoice(), `{"Test1":3}`},
		{"sequence of", asn1.SequenceOf[asn1.Int]{1, 2}, `[1,2]`},
		{"empty sequence of", asn1.SequenceOf[asn1.Int]{}, `[]`},
		{"sequence", fixtures.Name{GivenName: "John", Initial: "P", FamilyName: "Smith"}, `{"givenName":"John","initial":"P","familyName":"Smith"}`},
		{"settings", fixtures.SampleSettings(), `{"verbose":true,"label":"café","color":"blue","timeout":30,"retries":3,"backoff":250}`},
		{"settings defaults", fixtures.NewSettings(), `{"color":"red"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := jer.Marshal(test.v)
			require.NoError(t, err)
			require.Equal(t, test.want, string(got))
		})
	}
}

func TestAny(t *testing.T) {
	env := fixtures.SampleEnvelope()
	env.Extra = &asn1.Any{Contents: []byte(`{"k":[1,"two"]}`)}

	data, err := jer.Marshal(env)
	require.NoError(t, err)
	require.Contains(t, string(data), `"extra":{"k":[1,"two"]}`)
	require.Contains(t, string(data), `"choice":{"Test1":-123456789012345678901234567890}`)

	var got fixtures.Envelope
	err = jer.Unmarshal(data, &got)
	require.NoError(t, err)
	testutil.RequireEqual(t, env, got)

	env.Extra = &asn1.Any{Contents: []byte(`{"k":`)}
	_, err = jer.Marshal(env)
	testutil.RequireErrorIs(t, err, asn1.ErrInvalidValue)
}

func TestUnmarshal(t *testing.T) {
	t.Run("whitespace", func(t *testing.T) {
		var n fixtures.Name
		err := jer.Unmarshal([]byte(" {\n \"familyName\": \"Smith\", \"givenName\" : \"John\", \"initial\": \"P\" }\n"), &n)
		require.NoError(t, err)
		require.Equal(t, fixtures.Name{GivenName: "John", Initial: "P", FamilyName: "Smith"}, n)
	})

	t.Run("unknown members of extensible types", func(t *testing.T) {
		var s fixtures.SettingsV1
		err := jer.Unmarshal([]byte(`{"color":"green","future":{"a":1}}`), &s)
		require.NoError(t, err)
		require.Equal(t, fixtures.ColorGreen, s.Color)
		require.Equal(t, "5", s.Level.String())
	})
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		v    asn1.Decodable
		want error
	}{
		{"empty", ``, new(asn1.Boolean), asn1.ErrEndOfInput},
		{"syntax", `{"givenName":`, new(fixtures.Name), asn1.ErrSyntax},
		{"trailing data", `true 1`, new(asn1.Boolean), asn1.ErrTrailingData},
		{"wrong type", `"true"`, new(asn1.Boolean), asn1.ErrTypeMismatch},
		{"not an integer", `1.5`, new(asn1.Integer), asn1.ErrSpecViolation},
		{"bit string length", `{"value":"A0","length":9}`, new(asn1.BitString), asn1.ErrSpecViolation},
		{"octet string", `"0G"`, new(asn1.OctetString), asn1.ErrSpecViolation},
		{"unknown variant", `"purple"`, new(fixtures.Color), asn1.ErrTypeMismatch},
		{"two alternatives", `{"Test1":3,"Test2":true}`, new(fixtures.TestChoice), asn1.ErrSpecViolation},
		{"unknown alternative", `{"Test3":3}`, new(fixtures.TestChoice), asn1.ErrTypeMismatch},
		{"missing member", `{"givenName":"John","initial":"P"}`, new(fixtures.Name), asn1.ErrMissingField},
		{"unknown member", `{"givenName":"John","initial":"P","familyName":"Smith","age":3}`, new(fixtures.Name), asn1.ErrTypeMismatch},
		{"missing set member", `{"dateOfBirth":"19590717"}`, new(fixtures.ChildInformation), asn1.ErrMissingField},
		{"unknown set member", `{"age":3}`, new(fixtures.ChildInformation), asn1.ErrTypeMismatch},
		{"constraint", `{"level":11,"color":"red"}`, new(fixtures.Settings), asn1.ErrCustom},
		{"bad time", `"yesterday"`, new(asn1.GeneralizedTime), asn1.ErrSpecViolation},
		{"bad oid", `"1"`, new(asn1.ObjectIdentifier), asn1.ErrSpecViolation},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := jer.Unmarshal([]byte(test.data), test.v)
			testutil.RequireErrorIs(t, err, test.want)
		})
	}
}
