package commands

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/ber"
	"github.com/chaisql/asn1/internal/fixtures"
	"github.com/chaisql/asn1/jer"
	"github.com/chaisql/asn1/xer"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var formats = map[string]asn1.Format{
	"ber": ber.Format,
	"der": ber.DERFormat,
	"xer": xer.Format,
	"jer": jer.Format,
}

// NewConvertCommand returns a cli.Command for "asnconv convert".
func NewConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Decode a value and encode it with other encoding rules",
		UsageText: `asnconv convert --type name --from rules --to rules [options] [file]`,
		Description: `The convert command reads a value of the given type from a file,
or from the standard input, and writes it to the standard output.

$ asnconv convert --type PersonnelRecord --from xer --to der --hex record.xml
6081854F...

The --sample flag converts the built-in sample of the type instead:

$ asnconv convert --type Settings --sample --to jer`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "name of the type, see asnconv types",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "encoding rules of the input: ber, der, xer or jer",
				Value:   "xer",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "encoding rules of the output: ber, der, xer or jer",
				Value: "xer",
			},
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "read and write BER and DER values as hexadecimal text",
			},
			&cli.BoolFlag{
				Name:  "prolog",
				Usage: "write an XML declaration before XER values",
			},
			&cli.BoolFlag{
				Name:  "sample",
				Usage: "convert the sample value of the type instead of reading the input",
			},
		},
		Action: func(c *cli.Context) error {
			opts := ConvertOptions{
				Type:   c.String("type"),
				From:   c.String("from"),
				To:     c.String("to"),
				Hex:    c.Bool("hex"),
				Prolog: c.Bool("prolog"),
				Sample: c.Bool("sample"),
			}

			var r io.Reader = os.Stdin
			if path := c.Args().First(); path != "" && path != "-" && !opts.Sample {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			return Convert(r, c.App.Writer, opts)
		},
	}
}

// ConvertOptions configures Convert.
type ConvertOptions struct {
	// Type is the registered name of the type of the value.
	Type string
	// From and To name the encoding rules of the input and of the output.
	From, To string
	// Hex reads and writes binary encodings as hexadecimal text.
	Hex bool
	// Prolog writes an XML declaration before XER output.
	Prolog bool
	// Sample ignores the input and converts the sample value of Type.
	Sample bool
}

// Convert reads a value from r and writes it to w using other encoding rules.
func Convert(r io.Reader, w io.Writer, opts ConvertOptions) error {
	entry, ok := fixtures.Lookup(opts.Type)
	if !ok {
		return errors.Errorf("unknown type %q", opts.Type)
	}

	to, err := lookupFormat(opts.To)
	if err != nil {
		return err
	}

	var v fixtures.Value
	if opts.Sample {
		v = entry.Sample()
	} else {
		v, err = decode(r, entry, opts)
		if err != nil {
			return err
		}
	}

	var out []byte
	if opts.Prolog && to.Codec() == asn1.CodecXER {
		out, err = xer.MarshalWithOptions(v, xer.EncoderOptions{Prolog: true})
	} else {
		out, err = to.Marshal(v)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", entry.Name)
	}

	if isBinary(to) && opts.Hex {
		out = []byte(strings.ToUpper(hex.EncodeToString(out)))
	}
	if !isBinary(to) || opts.Hex {
		out = append(out, '\n')
	}

	_, err = w.Write(out)
	return err
}

func decode(r io.Reader, entry fixtures.Entry, opts ConvertOptions) (fixtures.Value, error) {
	from, err := lookupFormat(opts.From)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if isBinary(from) && opts.Hex {
		data, err = hex.DecodeString(stripSpaces(data))
		if err != nil {
			return nil, errors.Wrap(err, "invalid hexadecimal input")
		}
	}
	if !isBinary(from) {
		data = bytes.TrimRightFunc(data, unicode.IsSpace)
	}

	v := entry.New()
	if err := from.Unmarshal(data, v); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", entry.Name)
	}

	return v, nil
}

func lookupFormat(name string) (asn1.Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		names := maps.Keys(formats)
		slices.Sort(names)
		return nil, errors.Errorf("unknown encoding rules %q, expected one of %s", name, strings.Join(names, ", "))
	}

	return f, nil
}

func isBinary(f asn1.Format) bool {
	c := f.Codec()
	return c == asn1.CodecBER || c == asn1.CodecDER
}

func stripSpaces(data []byte) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(data))
}
