package asn1_test

import (
	"math/big"
	"testing"

	"github.com/chaisql/asn1"
	"github.com/chaisql/asn1/internal/testutil"
	"github.com/stretchr/testify/require"
)

// stub is a Decoder returning the same integer for every field.
// Unused methods panic.
type stub struct {
	asn1.Decoder
	present  bool
	value    int64
	explicit []asn1.Tag
	tags     []asn1.Tag
}

func (s *stub) Codec() asn1.Codec { return asn1.CodecJER }

func (s *stub) DecodeInteger(tag asn1.Tag, _ asn1.Constraints) (*big.Int, error) {
	s.tags = append(s.tags, tag)
	return big.NewInt(s.value), nil
}

func (s *stub) DecodeExplicitPrefix(tag asn1.Tag, v asn1.Decodable) error {
	s.explicit = append(s.explicit, tag)
	return asn1.Decode(s, v)
}

func (s *stub) DecodeOptional(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	if !s.present {
		return false, nil
	}
	return true, asn1.DecodeWithTagAndConstraints(s, v, tag, c)
}

func (s *stub) DecodeExtensionAddition(tag asn1.Tag, c asn1.Constraints, v asn1.Decodable) (bool, error) {
	return s.DecodeOptional(tag, c, v)
}

func (s *stub) DecodeExtensionAdditionGroup(v asn1.ConstructedDecodable) (bool, error) {
	return s.present, nil
}

func TestDecode(t *testing.T) {
	d := stub{value: 7}

	var n asn1.Int
	require.NoError(t, asn1.Decode(&d, &n))
	require.Equal(t, asn1.Int(7), n)

	require.NoError(t, asn1.DecodeWithTag(&d, &n, asn1.ContextTag(2)))
	require.NoError(t, asn1.DecodeExplicit(&d, &n, asn1.ContextTag(5)))
	testutil.RequireEqual(t, []asn1.Tag{asn1.TagInteger, asn1.ContextTag(2), asn1.TagInteger}, d.tags)
	testutil.RequireEqual(t, []asn1.Tag{asn1.ContextTag(5)}, d.explicit)

	err := asn1.DecodeWithConstraints(&d, &n, asn1.ValueRange(0, 5))
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)
}

func TestDecodeOverflow(t *testing.T) {
	d := stub{value: 1 << 40}

	var n asn1.Int32
	err := asn1.Decode(&d, &n)
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)

	d.value = -1
	var u asn1.Uint
	err = asn1.Decode(&d, &u)
	testutil.RequireErrorIs(t, err, asn1.ErrCustom)
}

func TestDecodeOptional(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		d := stub{value: 7}
		v := &asn1.Integer{}
		require.NoError(t, asn1.DecodeOptional(&d, &v))
		require.Nil(t, v)
	})

	t.Run("present", func(t *testing.T) {
		d := stub{value: 7, present: true}
		var v *asn1.Integer
		require.NoError(t, asn1.DecodeOptionalWithTag(&d, &v, asn1.ContextTag(1)))
		require.NotNil(t, v)
		require.Equal(t, "7", v.String())
		testutil.RequireEqual(t, []asn1.Tag{asn1.ContextTag(1)}, d.tags)
	})

	t.Run("constraints", func(t *testing.T) {
		d := stub{value: 7, present: true}
		var v *asn1.Int
		err := asn1.DecodeOptionalWithConstraints(&d, &v, asn1.MaxValue(6))
		testutil.RequireErrorIs(t, err, asn1.ErrCustom)
	})
}

func TestDecodeDefault(t *testing.T) {
	def := func() asn1.Integer { return asn1.NewInteger(5) }

	t.Run("absent", func(t *testing.T) {
		d := stub{value: 7}
		v := asn1.NewInteger(1)
		require.NoError(t, asn1.DecodeDefault(&d, &v, def))
		require.Equal(t, "5", v.String())
	})

	t.Run("present", func(t *testing.T) {
		d := stub{value: 7, present: true}
		var v asn1.Integer
		require.NoError(t, asn1.DecodeDefaultWithTag(&d, &v, def, asn1.ContextTag(0)))
		require.Equal(t, "7", v.String())
	})

	t.Run("constraints", func(t *testing.T) {
		d := stub{value: 7, present: true}
		var v asn1.Integer
		err := asn1.DecodeDefaultWithConstraints(&d, &v, def, asn1.ValueRange(0, 6))
		testutil.RequireErrorIs(t, err, asn1.ErrCustom)
	})
}

func TestDecodeExtensionAdditions(t *testing.T) {
	d := stub{value: 7}

	a := new(asn1.Integer)
	require.NoError(t, asn1.DecodeExtensionAddition(&d, &a, asn1.ContextTag(4), asn1.NoConstraints))
	require.Nil(t, a)

	g := new(group)
	require.NoError(t, asn1.DecodeExtensionAdditionGroup(&d, &g))
	require.Nil(t, g)

	d.present = true
	require.NoError(t, asn1.DecodeExtensionAddition(&d, &a, asn1.ContextTag(4), asn1.NoConstraints))
	require.Equal(t, "7", a.String())
	require.NoError(t, asn1.DecodeExtensionAdditionGroup(&d, &g))
	require.NotNil(t, g)
}
