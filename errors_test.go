package asn1_test

import (
	"testing"

	"github.com/chaisql/asn1"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		kind error
	}{
		{"decode", asn1.NewDecodeError(asn1.CodecBER, asn1.ErrSpecViolation, "X.690 §%s", "8.2.2"), "ber: specification violation: X.690 §8.2.2", asn1.ErrSpecViolation},
		{"encode", asn1.NewEncodeError(asn1.CodecXER, asn1.ErrInvalidValue, "bad"), "xer: invalid value: bad", asn1.ErrInvalidValue},
		{"type mismatch", asn1.TypeMismatchError(asn1.CodecXER, "<a>", "<b>"), "xer: type mismatch: needed <a>, found <b>", asn1.ErrTypeMismatch},
		{"end of input", asn1.EndOfInputError(asn1.CodecJER), "jer: unexpected end of input", asn1.ErrEndOfInput},
		{"custom encode", asn1.CustomEncodeError("too big", asn1.CodecDER), "der: custom error: too big", asn1.ErrCustom},
		{"custom decode", asn1.CustomDecodeError("too big", asn1.CodecDER), "der: custom error: too big", asn1.ErrCustom},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.EqualError(t, test.err, test.want)
			require.ErrorIs(t, test.err, test.kind)

			wrapped := errors.Wrap(test.err, "decoding Settings")
			require.ErrorIs(t, wrapped, test.kind)
			require.Equal(t, "decoding Settings: "+test.want, wrapped.Error())
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	err := errors.Wrap(asn1.TypeMismatchError(asn1.CodecBER, "INTEGER", "BOOLEAN"), "field")
	require.True(t, asn1.IsTypeMismatch(err))
	require.False(t, asn1.IsEndOfInput(err))

	err = asn1.EndOfInputError(asn1.CodecBER)
	require.True(t, asn1.IsEndOfInput(err))
	require.False(t, asn1.IsTypeMismatch(err))
}

func TestErrorAs(t *testing.T) {
	err := errors.Wrap(asn1.TypeMismatchError(asn1.CodecJER, "string", "number"), "label")

	var derr *asn1.DecodeError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, asn1.CodecJER, derr.Codec)
	require.Equal(t, "string", derr.Needed)
	require.Equal(t, "number", derr.Found)

	var eerr *asn1.EncodeError
	require.False(t, errors.As(err, &eerr))

	err = asn1.CustomEncodeError("no alternative", asn1.CodecXER)
	require.True(t, errors.As(err, &eerr))
	require.Equal(t, "no alternative", eerr.Msg)
	require.Equal(t, asn1.ErrCustom, eerr.Kind)
}
