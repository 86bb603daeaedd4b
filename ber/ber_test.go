package ber_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/internal/codectest"
	"github.com/chaisql/asn1/internal/fixtures"
	"github.com/chaisql/asn1/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Run("BER", func(t *testing.T) {
		codectest.TestFormat(t, ber.Format)
	})
	t.Run("DER", func(t *testing.T) {
		codectest.TestFormat(t, ber.DERFormat)
	})
}

func fromHex(t testing.TB, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

const personnelRecordHex = "60 81 85" +
	" 61 10 1A 04 4A6F686E 1A 01 50 1A 05 536D697468" +
	" A0 0A 1A 08 4469726563746F72" +
	" 42 01 33" +
	" A1 0A 43 08 3139373130393137" +
	" A2 12 61 10 1A 04 4D617279 1A 01 54 1A 05 536D697468" +
	" A3 42" +
	" 31 1F 61 11 1A 05 52616C7068 1A 01 54 1A 05 536D697468 A0 0A 43 08 3139353731313131" +
	" 31 1F 61 11 1A 05 537573616E 1A 01 42 1A 05 4A6F6E6573 A0 0A 43 08 3139353930373137"

func TestMarshal(t *testing.T) {
	choice := fixtures.SampleTestChoice()

	tests := []struct {
		name string
		v    asn1.Encodable
		want string
	}{
		{"true", asn1.Boolean(true), "01 01 FF"},
		{"false", asn1.Boolean(false), "01 01 00"},
		{"integer", asn1.NewInteger(-1235352), "02 03 ED 26 68"},
		{"zero", asn1.Int(0), "02 01 00"},
		{"uint", asn1.Uint(128), "02 02 00 80"},
		{"bit string", asn1.NewBitString(true, false, true, false), "03 02 04 A0"},
		{"empty bit string", asn1.BitString{}, "03 01 00"},
		{"octet string", asn1.OctetString{0x01, 0xFF}, "04 02 01 FF"},
		{"null", asn1.Null{}, "05 00"},
		{"oid", asn1.ObjectIdentifier{1, 2, 840, 113549}, "06 06 2A 86 48 86 F7 0D"},
		{"enumerated", fixtures.ColorBlue, "0A 01 02"},
		{"utf8", asn1.UTF8String("café"), "0C 05 63 61 66 C3 A9"},
		{"bmp", asn1.BMPString("hé"), "1E 04 00 68 00 E9"},
		{"generalized time", asn1.GeneralizedTime{Time: fixtures.SampleEnvelope().Created.Time}, "18 13 " + hex.EncodeToString([]byte("20240314150926.535Z"))},
		{"utc time", asn1.UTCTime{Time: fixtures.SampleEnvelope().Expires.Time}, "17 0D " + hex.EncodeToString([]byte("491231235959Z"))},
		{"choice", choice, "02 01 03"},
		{"sequence of", asn1.SequenceOf[asn1.Int]{1, 2}, "30 06 02 01 01 02 01 02"},
		{"settings", fixtures.SampleSettings(), "30 17 01 01 FF 0C 05 63 61 66 C3 A9 0A 01 02 80 01 1E 81 01 03 82 02 00 FA"},
		{"settings defaults", fixtures.NewSettings(), "30 03 0A 01 00"},
		{"personnel record", fixtures.SamplePersonnelRecord(), personnelRecordHex},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ber.Marshal(test.v)
			require.NoError(t, err)
			require.Equal(t, fromHex(t, test.want), got)
		})
	}
}

func TestMarshalDER(t *testing.T) {
	t.Run("set members are sorted by tag", func(t *testing.T) {
		got, err := ber.DERFormat.Marshal(fixtures.SamplePersonnelRecord())
		require.NoError(t, err)

		want := fromHex(t, "60 81 85"+
			" 61 10 1A 04 4A6F686E 1A 01 50 1A 05 536D697468"+
			" 42 01 33"+
			" A0 0A 1A 08 4469726563746F72")
		require.Equal(t, want, got[:len(want)])

		var r fixtures.PersonnelRecord
		err = ber.UnmarshalWithOptions(got, &r, ber.Options{Rules: ber.DER})
		require.NoError(t, err)
		testutil.RequireEqual(t, fixtures.SamplePersonnelRecord(), r)
	})

	t.Run("set of elements are sorted by encoding", func(t *testing.T) {
		got, err := ber.DERFormat.Marshal(asn1.SetOf[asn1.PrintableString]{"bb", "a", "ab"})
		require.NoError(t, err)
		require.Equal(t, fromHex(t, "31 0B 13 01 61 13 02 61 62 13 02 62 62"), got)

		got, err = ber.Format.Marshal(asn1.SetOf[asn1.PrintableString]{"bb", "a"})
		require.NoError(t, err)
		require.Equal(t, fromHex(t, "31 07 13 02 62 62 13 01 61"), got)
	})
}

func TestUnmarshal(t *testing.T) {
	t.Run("personnel record", func(t *testing.T) {
		var r fixtures.PersonnelRecord
		err := ber.Unmarshal(fromHex(t, personnelRecordHex), &r)
		require.NoError(t, err)
		testutil.RequireEqual(t, fixtures.SamplePersonnelRecord(), r)
	})

	t.Run("indefinite length", func(t *testing.T) {
		var s fixtures.Settings
		err := ber.Unmarshal(fromHex(t, "30 80 01 01 FF 0A 01 01 00 00"), &s)
		require.NoError(t, err)
		require.True(t, bool(s.Verbose))
		require.Equal(t, fixtures.ColorGreen, s.Color)
		require.Equal(t, "5", s.Level.String())
	})

	t.Run("non canonical boolean", func(t *testing.T) {
		var b asn1.Boolean
		err := ber.Unmarshal(fromHex(t, "01 01 01"), &b)
		require.NoError(t, err)
		require.True(t, bool(b))
	})

	t.Run("unknown extensions are skipped", func(t *testing.T) {
		var s fixtures.SettingsV1
		err := ber.Unmarshal(fromHex(t, "30 09 0A 01 02 80 01 1E 9F 40 00"), &s)
		require.NoError(t, err)
		require.Equal(t, fixtures.ColorBlue, s.Color)
	})

	t.Run("any", func(t *testing.T) {
		env := fixtures.SampleEnvelope()
		env.Extra = &asn1.Any{Contents: fromHex(t, "01 01 FF")}

		data, err := ber.Marshal(env)
		require.NoError(t, err)
		require.Contains(t, hex.EncodeToString(data), "a1030101ff")

		var got fixtures.Envelope
		err = ber.Unmarshal(data, &got)
		require.NoError(t, err)
		testutil.RequireEqual(t, env, got)
	})
}

// mixed ::= SET {
//
//	n [5] IMPLICIT INTEGER,
//	c TestChoice }
type mixed struct {
	N asn1.Int
	C fixtures.TestChoice
}

var mixedDescriptor = asn1.Constructed{
	Identifier: "Mixed",
	Fields: []asn1.Field{
		{Name: "n", Tag: asn1.ContextTag(5)},
		{Name: "c", Tag: asn1.TagEOC},
	},
}

func (mixed) ASN1Tag() asn1.Tag { return asn1.TagSet }
func (mixed) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (mixed) ASN1Identifier() string { return mixedDescriptor.Identifier }
func (mixed) ASN1Descriptor() *asn1.Constructed { return &mixedDescriptor }

func (m mixed) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSet(tag, &mixedDescriptor, func(e asn1.Encoder) error {
		if err := asn1.EncodeWithTag(e, m.N, asn1.ContextTag(5)); err != nil {
			return err
		}
		return asn1.Encode(e, m.C)
	})
}

func (m *mixed) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSet(tag, &mixedDescriptor, func(d asn1.Decoder, i int) error {
		if i == 0 {
			return asn1.DecodeWithTag(d, &m.N, asn1.ContextTag(5))
		}
		return asn1.Decode(d, &m.C)
	})
}

func TestSetWithUntaggedChoice(t *testing.T) {
	yes := asn1.Boolean(true)
	v := mixed{N: 7, C: fixtures.TestChoice{Test2: &yes}}

	tests := []struct {
		name string
		f    asn1.Format
		want string
	}{
		{"BER", ber.Format, "31 06 85 01 07 01 01 FF"},
		{"DER", ber.DERFormat, "31 06 01 01 FF 85 01 07"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := test.f.Marshal(v)
			require.NoError(t, err)
			require.Equal(t, fromHex(t, test.want), data)

			var got mixed
			require.NoError(t, test.f.Unmarshal(data, &got))
			testutil.RequireEqual(t, v, got)
		})
	}

	t.Run("unknown member", func(t *testing.T) {
		var got mixed
		err := ber.Unmarshal(fromHex(t, "31 06 85 01 07 04 01 FF"), &got)
		testutil.RequireErrorIs(t, err, asn1.ErrTypeMismatch)
	})

	t.Run("duplicate choice", func(t *testing.T) {
		var got mixed
		err := ber.Unmarshal(fromHex(t, "31 09 85 01 07 01 01 FF 02 01 03"), &got)
		testutil.RequireErrorIs(t, err, asn1.ErrTypeMismatch)
	})
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		v     asn1.Decodable
		rules ber.Rules
		want  error
	}{
		{"empty", "", new(asn1.Boolean), ber.BER, asn1.ErrEndOfInput},
		{"truncated content", "02 03 ED 26", new(asn1.Integer), ber.BER, asn1.ErrEndOfInput},
		{"truncated header", "30", new(fixtures.Settings), ber.BER, asn1.ErrEndOfInput},
		{"wrong tag", "02 01 01", new(asn1.Boolean), ber.BER, asn1.ErrTypeMismatch},
		{"trailing data", "01 01 FF 00", new(asn1.Boolean), ber.BER, asn1.ErrTrailingData},
		{"boolean length", "01 02 FF FF", new(asn1.Boolean), ber.BER, asn1.ErrSpecViolation},
		{"non canonical boolean", "01 01 01", new(asn1.Boolean), ber.DER, asn1.ErrSpecViolation},
		{"non minimal integer", "02 02 00 01", new(asn1.Integer), ber.BER, asn1.ErrSpecViolation},
		{"non minimal length", "01 81 01 FF", new(asn1.Boolean), ber.BER, nil},
		{"non minimal length in DER", "01 81 01 FF", new(asn1.Boolean), ber.DER, asn1.ErrSpecViolation},
		{"indefinite length", "30 80 0A 01 01 00 00", new(fixtures.Settings), ber.DER, asn1.ErrSpecViolation},
		{"indefinite primitive", "04 80 00 00", new(asn1.OctetString), ber.BER, asn1.ErrSpecViolation},
		{"unused bits", "03 02 08 00", new(asn1.BitString), ber.BER, asn1.ErrSpecViolation},
		{"non empty null", "05 01 00", new(asn1.Null), ber.BER, asn1.ErrSpecViolation},
		{"unknown variant", "0A 01 07", new(fixtures.Color), ber.BER, asn1.ErrTypeMismatch},
		{"unknown alternative", "04 00", new(fixtures.TestChoice), ber.BER, asn1.ErrTypeMismatch},
		{"missing set member", "60 03 42 01 33", new(fixtures.PersonnelRecord), ber.BER, asn1.ErrMissingField},
		{"set of equal elements", "31 06 02 01 01 02 01 01", new(asn1.SetOf[asn1.Int]), ber.BER, nil},
		{"duplicate set member", "60 06 42 01 33 42 01 33", new(fixtures.PersonnelRecord), ber.BER, asn1.ErrSpecViolation},
		{"constraint", "30 06 02 01 0B 0A 01 00", new(fixtures.Settings), ber.BER, asn1.ErrCustom},
		{"unexpected member", "61 0C 1A 01 41 1A 01 42 1A 01 43 02 01 01", new(fixtures.Name), ber.BER, asn1.ErrTypeMismatch},
		{"bad time", "18 03 313233", new(asn1.GeneralizedTime), ber.BER, asn1.ErrSpecViolation},
		{"alphabet", "13 01 21", new(asn1.PrintableString), ber.BER, asn1.ErrCustom},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ber.UnmarshalWithOptions(fromHex(t, test.data), test.v, ber.Options{Rules: test.rules})
			if test.want == nil {
				require.NoError(t, err)
				return
			}
			testutil.RequireErrorIs(t, err, test.want)
		})
	}
}
