package ber

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
)

const (
	generalizedTimeFormat = "20060102150405.999999999Z"
	generalizedTimeLayout = "20060102150405Z0700"
	utcTimeFormat         = "060102150405Z"
	utcTimeLayout         = "060102150405Z0700"
	utcTimeShortLayout    = "0601021504Z0700"
)

// FormatGeneralizedTime returns the canonical representation of t:
// YYYYMMDDHHMMSS, followed by the fraction of second without trailing zeros
// if any, and the letter Z. t is converted to UTC first.
func FormatGeneralizedTime(t time.Time) string {
	return t.UTC().Format(generalizedTimeFormat)
}

// FormatUTCTime returns the canonical representation of t: YYMMDDHHMMSSZ.
// t is converted to UTC first.
func FormatUTCTime(t time.Time) string {
	return t.UTC().Format(utcTimeFormat)
}

// ParseGeneralizedTime parses a GeneralizedTime with an optional fraction of
// second and either the letter Z or a numeric offset.
func ParseGeneralizedTime(s string) (time.Time, error) {
	c := carbon.ParseByLayout(s, generalizedTimeLayout, "UTC")
	if c.Error != nil {
		return time.Time{}, errors.Newf("invalid GeneralizedTime %q", s)
	}

	return c.ToStdTime().UTC(), nil
}

// ParseUTCTime parses a UTCTime, with or without seconds.
// Two digit years below 50 belong to the 21st century.
func ParseUTCTime(s string) (time.Time, error) {
	c := carbon.ParseByLayout(s, utcTimeLayout, "UTC")
	if c.Error != nil {
		c = carbon.ParseByLayout(s, utcTimeShortLayout, "UTC")
	}
	if c.Error != nil {
		return time.Time{}, errors.Newf("invalid UTCTime %q", s)
	}

	t := c.ToStdTime().UTC()
	if t.Year() >= 2050 {
		t = t.AddDate(-100, 0, 0)
	}

	return t, nil
}
