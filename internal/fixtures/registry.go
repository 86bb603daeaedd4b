// Package fixtures defines ASN.1 types with hand-written descriptor tables,
// in the shape a compiler would generate them, along with sample values.
package fixtures

import (
	"math/big"
	"time"

	"github.com/chaisql/asn1"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Value is a pointer to a type that can be both encoded and decoded.
type Value interface {
	asn1.Encodable
	asn1.Decodable
}

// Entry describes a registered type.
type Entry struct {
	Name string
	// New returns a pointer to a zero value of the type.
	New func() Value
	// Sample returns a pointer to a populated value of the type.
	Sample func() Value
}

var registry = map[string]Entry{}

func register(name string, newFn, sample func() Value) {
	registry[name] = Entry{Name: name, New: newFn, Sample: sample}
}

func init() {
	register("PersonnelRecord", func() Value { return new(PersonnelRecord) }, func() Value { v := SamplePersonnelRecord(); return &v })
	register("TestChoice", func() Value { return new(TestChoice) }, func() Value { v := SampleTestChoice(); return &v })
	register("Settings", func() Value { return new(Settings) }, func() Value { v := SampleSettings(); return &v })
	register("SettingsV1", func() Value { return new(SettingsV1) }, func() Value { v := SampleSettingsV1(); return &v })
	register("Envelope", func() Value { return new(Envelope) }, func() Value { v := SampleEnvelope(); return &v })
}

// Lookup returns the entry registered under name.
func Lookup(name string) (Entry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names returns the sorted list of registered types.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// SamplePersonnelRecord returns the record of X.690 Annex A.
func SamplePersonnelRecord() PersonnelRecord {
	return PersonnelRecord{
		Name:         Name{GivenName: "John", Initial: "P", FamilyName: "Smith"},
		Title:        "Director",
		Number:       51,
		DateOfHire:   "19710917",
		NameOfSpouse: Name{GivenName: "Mary", Initial: "T", FamilyName: "Smith"},
		Children: Children{
			{Name: Name{GivenName: "Ralph", Initial: "T", FamilyName: "Smith"}, DateOfBirth: "19571111"},
			{Name: Name{GivenName: "Susan", Initial: "B", FamilyName: "Jones"}, DateOfBirth: "19590717"},
		},
	}
}

// SampleTestChoice returns a TestChoice selecting Test1.
func SampleTestChoice() TestChoice {
	i := asn1.NewInteger(3)
	return TestChoice{Test1: &i}
}

// SampleSettings returns Settings using every extension addition.
func SampleSettings() Settings {
	label := asn1.UTF8String("café")
	timeout := asn1.NewInteger(30)
	backoff := asn1.NewInteger(250)

	return Settings{
		Verbose: true,
		Level:   asn1.NewInteger(5),
		Label:   &label,
		Color:   ColorBlue,
		Timeout: &timeout,
		Retry:   &SettingsRetry{Retries: asn1.NewInteger(3), Backoff: &backoff},
	}
}

// SampleSettingsV1 returns the first revision view of SampleSettings.
func SampleSettingsV1() SettingsV1 {
	s := SampleSettings()
	return SettingsV1{
		Verbose: s.Verbose,
		Level:   s.Level,
		Label:   s.Label,
		Color:   s.Color,
	}
}

// SampleEnvelope returns an Envelope without extra content.
func SampleEnvelope() Envelope {
	n, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	test1 := asn1.NewBigInteger(n)

	return Envelope{
		ID:      asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11},
		Flags:   asn1.NewBitString(true, false, true, true, false, false, false, false, true),
		Payload: asn1.OctetString{0xDE, 0xAD, 0xBE, 0xEF},
		Created: asn1.GeneralizedTime{Time: time.Date(2024, 3, 14, 15, 9, 26, 535000000, time.UTC)},
		Expires: asn1.UTCTime{Time: time.Date(2049, 12, 31, 23, 59, 59, 0, time.UTC)},
		Choice:  TestChoice{Test1: &test1},
		Marker:  asn1.Null{},
		Tags:    asn1.SetOf[asn1.PrintableString]{"alpha", "bravo", "delta"},
	}
}
