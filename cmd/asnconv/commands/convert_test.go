package commands_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/cmd/asnconv/commands"
	"github.com/chaisql/asn1/internal/fixtures"
	"github.com/chaisql/asn1/internal/testutil"
	"github.com/chaisql/asn1/xer"
	"github.com/stretchr/testify/require"
)

const personnelRecordHex = "60818561101A044A6F686E1A01501A05536D697468" +
	"A00A1A084469726563746F72" +
	"420133" +
	"A10A43083139373130393137" +
	"A21261101A044D6172791A01541A05536D697468" +
	"A342" +
	"311F61111A0552616C70681A01541A05536D697468A00A43083139353731313131" +
	"311F61111A05537573616E1A01421A054A6F6E6573A00A43083139353930373137"

func TestConvert(t *testing.T) {
	record, err := xer.Marshal(fixtures.SamplePersonnelRecord())
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		opts  commands.ConvertOptions
		want  string
	}{
		{"xer to ber", string(record) + "\n",
			commands.ConvertOptions{Type: "PersonnelRecord", From: "xer", To: "ber", Hex: true},
			personnelRecordHex + "\n"},
		{"ber to xer", "60 81 85" + personnelRecordHex[6:],
			commands.ConvertOptions{Type: "PersonnelRecord", From: "BER", To: "xer", Hex: true},
			string(record) + "\n"},
		{"jer to xer", `{"color":"red"}`,
			commands.ConvertOptions{Type: "Settings", From: "jer", To: "xer"},
			"<Settings><color><red/></color></Settings>\n"},
		{"sample", "",
			commands.ConvertOptions{Type: "TestChoice", To: "jer", Sample: true},
			`{"Test1":3}` + "\n"},
		{"prolog", "",
			commands.ConvertOptions{Type: "TestChoice", To: "xer", Sample: true, Prolog: true},
			`<?xml version="1.0" encoding="UTF-8"?><TestChoice><Test1>3</Test1></TestChoice>` + "\n"},
		{"raw binary", "",
			commands.ConvertOptions{Type: "TestChoice", To: "der", Sample: true},
			"\x02\x01\x03"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := commands.Convert(strings.NewReader(test.input), &buf, test.opts)
			require.NoError(t, err)
			require.Equal(t, test.want, buf.String())
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  commands.ConvertOptions
		want  string
	}{
		{"unknown type", "", commands.ConvertOptions{Type: "Foo", From: "xer", To: "ber"}, `unknown type "Foo"`},
		{"unknown rules", "", commands.ConvertOptions{Type: "Settings", From: "xer", To: "per"}, `unknown encoding rules "per", expected one of ber, der, jer, xer`},
		{"bad hex", "6", commands.ConvertOptions{Type: "Settings", From: "ber", To: "xer", Hex: true}, "invalid hexadecimal input"},
		{"bad input", "<Settings>", commands.ConvertOptions{Type: "Settings", From: "xer", To: "ber"}, "failed to decode Settings"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := commands.Convert(strings.NewReader(test.input), &buf, test.opts)
			require.Error(t, err)
			require.Contains(t, err.Error(), test.want)
			require.Zero(t, buf.Len())
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, name := range fixtures.Names() {
		t.Run(name, func(t *testing.T) {
			var jsonOut, berOut bytes.Buffer

			err := commands.Convert(nil, &jsonOut, commands.ConvertOptions{Type: name, To: "jer", Sample: true})
			require.NoError(t, err)

			err = commands.Convert(&jsonOut, &berOut, commands.ConvertOptions{Type: name, From: "jer", To: "der"})
			require.NoError(t, err)

			entry, ok := fixtures.Lookup(name)
			require.True(t, ok)

			want, got := entry.Sample(), entry.New()
			err = ber.UnmarshalWithOptions(berOut.Bytes(), got, ber.Options{Rules: ber.DER})
			require.NoError(t, err)
			testutil.RequireEqual(t, want, got)
		})
	}
}

func TestApp(t *testing.T) {
	t.Run("types", func(t *testing.T) {
		var buf bytes.Buffer
		app := commands.NewApp()
		app.Writer = &buf

		err := app.Run([]string{"asnconv", "types"})
		require.NoError(t, err)
		require.Equal(t, strings.Join(fixtures.Names(), "\n")+"\n", buf.String())
	})

	t.Run("convert sample", func(t *testing.T) {
		var buf bytes.Buffer
		app := commands.NewApp()
		app.Writer = &buf

		err := app.Run([]string{"asnconv", "convert", "--type", "Settings", "--sample", "--to", "jer"})
		require.NoError(t, err)
		require.Equal(t, `{"verbose":true,"label":"café","color":"blue","timeout":30,"retries":3,"backoff":250}`+"\n", buf.String())
	})

	t.Run("missing type", func(t *testing.T) {
		var buf bytes.Buffer
		app := commands.NewApp()
		app.Writer = &buf
		app.ErrWriter = &buf

		err := app.Run([]string{"asnconv", "convert", "--sample"})
		require.Error(t, err)
	})
}
