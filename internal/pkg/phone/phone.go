package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// Normalized holds the parsed representation of a raw phone number string.
type Normalized struct {
	CountryCode         string // dialing prefix, e.g. "+33"
	ISOCode             string // ISO 3166-1 alpha-2 region, e.g. "FR"
	InternationalNumber string // E.164-style international format
}

// Normalize parses a raw phone number (expected to carry its country prefix)
// into its country code, ISO region and international format. Returns an error
// for unparseable or invalid numbers.
func Normalize(raw string) (*Normalized, error) {
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return nil, fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil, fmt.Errorf("not a valid phone number: %q", raw)
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	return &Normalized{
		CountryCode:         fmt.Sprintf("+%d", num.GetCountryCode()),
		ISOCode:             region,
		InternationalNumber: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
	}, nil
}

// Timezones resolves the IANA timezone names a phone number belongs to.
func Timezones(raw string) ([]string, error) {
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return nil, fmt.Errorf("parse phone number: %w", err)
	}
	return phonenumbers.GetTimezonesForNumber(num)
}
