package fixtures

import "github.com/chaisql/asn1"

// Settings ::= SEQUENCE {
//
//	verbose BOOLEAN DEFAULT FALSE,
//	level   INTEGER (0..10) DEFAULT 5,
//	label   UTF8String OPTIONAL,
//	color   Color,
//	...,
//	timeout [0] INTEGER OPTIONAL,
//	[[ retries [1] INTEGER,
//	   backoff [2] INTEGER OPTIONAL ]] }
type Settings struct {
	Verbose asn1.Boolean
	Level   asn1.Integer
	Label   *asn1.UTF8String
	Color   Color
	Timeout *asn1.Integer
	Retry   *SettingsRetry
}

var levelConstraints = asn1.ValueRange(0, 10)

func defaultVerbose() asn1.Boolean { return false }

func defaultLevel() asn1.Integer { return asn1.NewInteger(5) }

var settingsDescriptor = asn1.Constructed{
	Identifier: "Settings",
	Fields: []asn1.Field{
		{Name: "verbose", Tag: asn1.TagBoolean, Default: true},
		{Name: "level", Tag: asn1.TagInteger, Default: true},
		{Name: "label", Tag: asn1.TagUTF8String, Optional: true},
		{Name: "color", Tag: asn1.TagEnumerated},
		{Name: "timeout", Tag: asn1.ContextTag(0), Optional: true, Extension: true},
		{Name: "retry", Tag: asn1.TagSequence, Extension: true},
	},
	Extensible: true,
}

// NewSettings returns Settings holding the default values.
func NewSettings() Settings {
	return Settings{
		Verbose: defaultVerbose(),
		Level:   defaultLevel(),
	}
}

func (Settings) ASN1Tag() asn1.Tag { return asn1.TagSequence }
func (Settings) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (Settings) ASN1Identifier() string { return settingsDescriptor.Identifier }
func (Settings) ASN1Descriptor() *asn1.Constructed { return &settingsDescriptor }

func (s Settings) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSequence(tag, &settingsDescriptor, func(e asn1.Encoder) error {
		if err := asn1.EncodeDefault(e, s.Verbose, defaultVerbose); err != nil {
			return err
		}
		if err := asn1.EncodeDefaultWithConstraints(e, s.Level, defaultLevel, levelConstraints); err != nil {
			return err
		}
		if err := asn1.EncodeOptional(e, s.Label); err != nil {
			return err
		}
		if err := asn1.Encode(e, s.Color); err != nil {
			return err
		}
		if err := asn1.EncodeExtensionAddition(e, s.Timeout, asn1.ContextTag(0), asn1.NoConstraints); err != nil {
			return err
		}
		return asn1.EncodeExtensionAdditionGroup(e, s.Retry)
	})
}

func (s *Settings) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSequence(tag, &settingsDescriptor, func(d asn1.Decoder) error {
		if err := asn1.DecodeDefault(d, &s.Verbose, defaultVerbose); err != nil {
			return err
		}
		if err := asn1.DecodeDefaultWithConstraints(d, &s.Level, defaultLevel, levelConstraints); err != nil {
			return err
		}
		if err := asn1.DecodeOptional(d, &s.Label); err != nil {
			return err
		}
		if err := asn1.Decode(d, &s.Color); err != nil {
			return err
		}
		if err := asn1.DecodeExtensionAddition(d, &s.Timeout, asn1.ContextTag(0), asn1.NoConstraints); err != nil {
			return err
		}
		return asn1.DecodeExtensionAdditionGroup(d, &s.Retry)
	})
}

// SettingsRetry is the extension addition group of Settings.
type SettingsRetry struct {
	Retries asn1.Integer
	Backoff *asn1.Integer
}

var settingsRetryDescriptor = asn1.Constructed{
	Identifier: "SettingsRetry",
	Fields: []asn1.Field{
		{Name: "retries", Tag: asn1.ContextTag(1)},
		{Name: "backoff", Tag: asn1.ContextTag(2), Optional: true},
	},
}

func (SettingsRetry) ASN1Tag() asn1.Tag { return asn1.TagSequence }
func (SettingsRetry) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (SettingsRetry) ASN1Identifier() string { return settingsRetryDescriptor.Identifier }
func (SettingsRetry) ASN1Descriptor() *asn1.Constructed { return &settingsRetryDescriptor }

func (r SettingsRetry) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSequence(tag, &settingsRetryDescriptor, func(e asn1.Encoder) error {
		if err := asn1.EncodeWithTag(e, r.Retries, asn1.ContextTag(1)); err != nil {
			return err
		}
		return asn1.EncodeOptionalWithTag(e, r.Backoff, asn1.ContextTag(2))
	})
}

func (r *SettingsRetry) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSequence(tag, &settingsRetryDescriptor, func(d asn1.Decoder) error {
		if err := asn1.DecodeWithTag(d, &r.Retries, asn1.ContextTag(1)); err != nil {
			return err
		}
		return asn1.DecodeOptionalWithTag(d, &r.Backoff, asn1.ContextTag(2))
	})
}

// SettingsV1 is the first revision of Settings, without any extension addition.
// Its decoder skips the additions of later revisions.
type SettingsV1 struct {
	Verbose asn1.Boolean
	Level   asn1.Integer
	Label   *asn1.UTF8String
	Color   Color
}

var settingsV1Descriptor = asn1.Constructed{
	Identifier: "Settings",
	Fields:     settingsDescriptor.Fields[:4],
	Extensible: true,
}

func (SettingsV1) ASN1Tag() asn1.Tag { return asn1.TagSequence }
func (SettingsV1) ASN1Constraints() asn1.Constraints { return asn1.NoConstraints }
func (SettingsV1) ASN1Identifier() string { return settingsV1Descriptor.Identifier }
func (SettingsV1) ASN1Descriptor() *asn1.Constructed { return &settingsV1Descriptor }

func (s SettingsV1) EncodeASN1(e asn1.Encoder, tag asn1.Tag, _ asn1.Constraints) error {
	return e.EncodeSequence(tag, &settingsV1Descriptor, func(e asn1.Encoder) error {
		if err := asn1.EncodeDefault(e, s.Verbose, defaultVerbose); err != nil {
			return err
		}
		if err := asn1.EncodeDefaultWithConstraints(e, s.Level, defaultLevel, levelConstraints); err != nil {
			return err
		}
		if err := asn1.EncodeOptional(e, s.Label); err != nil {
			return err
		}
		return asn1.Encode(e, s.Color)
	})
}

func (s *SettingsV1) DecodeASN1(d asn1.Decoder, tag asn1.Tag, _ asn1.Constraints) error {
	return d.DecodeSequence(tag, &settingsV1Descriptor, func(d asn1.Decoder) error {
		if err := asn1.DecodeDefault(d, &s.Verbose, defaultVerbose); err != nil {
			return err
		}
		if err := asn1.DecodeDefaultWithConstraints(d, &s.Level, defaultLevel, levelConstraints); err != nil {
			return err
		}
		if err := asn1.DecodeOptional(d, &s.Label); err != nil {
			return err
		}
		return asn1.Decode(d, &s.Color)
	})
}
