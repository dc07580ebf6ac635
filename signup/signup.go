package signup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/junaidrashid-git/rivaleats-api/checkout"
)

type Preference string

const (
	PreferEmail  Preference = "email"
	PreferSMS    Preference = "sms"
	PreferEither Preference = "either"
)

var (
	ErrInvalidEmail      = errors.New("a valid email address is required")
	ErrSMSConsentMissing = errors.New("SMS consent is required when selecting SMS updates.")
)

// Request is a mailing-list signup as submitted.
type Request struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	ContactPreference string
	SMSConsent        bool
}

// Signup is a validated, normalized mailing-list entry.
type Signup struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	ContactPreference Preference
	SMSConsent        bool
}

func parsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case "", PreferEmail:
		return PreferEmail, nil
	case PreferSMS:
		return PreferSMS, nil
	case PreferEither:
		return PreferEither, nil
	default:
		return "", fmt.Errorf("invalid contact preference %q", s)
	}
}

// Validate applies the signup rules: a valid email is required, and a phone
// number with any non-email preference needs explicit SMS consent.
func Validate(req Request) (Signup, error) {
	email := strings.TrimSpace(req.Email)
	if !checkout.ValidEmail(email) {
		return Signup{}, ErrInvalidEmail
	}
	pref, err := parsePreference(req.ContactPreference)
	if err != nil {
		return Signup{}, err
	}
	phone := strings.TrimSpace(req.Phone)
	if phone != "" && pref != PreferEmail && !req.SMSConsent {
		return Signup{}, ErrSMSConsentMissing
	}
	return Signup{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             email,
		Phone:             phone,
		ContactPreference: pref,
		SMSConsent:        req.SMSConsent,
	}, nil
}
