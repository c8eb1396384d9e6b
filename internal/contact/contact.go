// Package contact implements the pure validation rules for the contact
// information (name, email, phone) collected by the booking, membership
// inquiry, and shop pickup flows.
//
// Email and phone rules carry deployment policy: the gym only accepts
// addresses from a single mail provider and phone numbers from a single
// national numbering plan. Both are configurable via Policy rather than
// hard-coded, since they are business choices, not fundamental constraints.
package contact

import (
	"regexp"
	"sort"
	"strings"
)

// Result is the outcome of a single field validation.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Policy holds the deployment-specific contact validation rules.
type Policy struct {
	// EmailDomain is the only accepted email domain (e.g. "gmail.com").
	// Empty means any well-formed address is accepted.
	EmailDomain string

	// PhoneCountryCode is the required calling-code prefix, including the
	// leading plus (e.g. "+355").
	PhoneCountryCode string

	// PhoneMobilePrefixes are the permitted leading digits of the national
	// significant number (e.g. "6", "7", "8" for Albanian mobiles).
	PhoneMobilePrefixes []string
}

// DefaultPolicy returns the policy the gym runs in production:
// Gmail-only addresses and Albanian mobile numbers.
func DefaultPolicy() Policy {
	return Policy{
		EmailDomain:         "gmail.com",
		PhoneCountryCode:    "+355",
		PhoneMobilePrefixes: []string{"6", "7", "8"},
	}
}

// nationalNumberLen is the number of digits that follow the calling code.
const nationalNumberLen = 9

var (
	emailShapeRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameRegexp       = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	phoneStripRegexp = regexp.MustCompile(`[\s\-()]`)
	digitsRegexp     = regexp.MustCompile(`^[0-9]+$`)
)

// IsEmailShaped reports whether the given string looks like an email address
// (local-part@domain.tld), without applying the single-domain policy.
func IsEmailShaped(email string) bool {
	return emailShapeRegexp.MatchString(strings.TrimSpace(email))
}

// ValidateName checks a customer name: non-empty, 2..50 characters,
// letters, spaces, hyphens, and apostrophes only.
func ValidateName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Result{Valid: false, Message: "name is required"}
	}
	if len(trimmed) < 2 {
		return Result{Valid: false, Message: "name must be at least 2 characters long"}
	}
	if len(trimmed) > 50 {
		return Result{Valid: false, Message: "name must be less than 50 characters"}
	}
	if !nameRegexp.MatchString(trimmed) {
		return Result{Valid: false, Message: "name can only contain letters, spaces, hyphens, and apostrophes"}
	}
	return Result{Valid: true}
}

// ValidateEmail checks that the address is well formed and, when the policy
// names a domain, that it belongs to that domain.
func (p Policy) ValidateEmail(email string) Result {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return Result{Valid: false, Message: "email is required"}
	}
	if !emailShapeRegexp.MatchString(trimmed) {
		return Result{Valid: false, Message: "please enter a valid email address"}
	}
	if p.EmailDomain != "" {
		at := strings.LastIndex(trimmed, "@")
		if !strings.EqualFold(trimmed[at+1:], p.EmailDomain) {
			return Result{Valid: false, Message: "please use a " + p.EmailDomain + " address (example@" + p.EmailDomain + ")"}
		}
	}
	return Result{Valid: true}
}

// ValidatePhone checks a phone number against the policy's numbering plan.
// Spaces, dashes, and parentheses are stripped before checking; the cleaned
// value must be the calling code followed by exactly nine digits, the first
// of which must be one of the permitted mobile prefixes.
func (p Policy) ValidatePhone(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return Result{Valid: false, Message: "phone number is required"}
	}

	cleaned := CleanPhone(phone)

	if !strings.HasPrefix(cleaned, p.PhoneCountryCode) {
		return Result{Valid: false, Message: "phone number must start with " + p.PhoneCountryCode}
	}
	if len(cleaned) != len(p.PhoneCountryCode)+nationalNumberLen {
		return Result{Valid: false, Message: "phone number must be " + p.PhoneCountryCode + " followed by 9 digits"}
	}

	digits := cleaned[len(p.PhoneCountryCode):]
	if !digitsRegexp.MatchString(digits) {
		return Result{Valid: false, Message: "phone number must contain only digits after " + p.PhoneCountryCode}
	}

	for _, prefix := range p.PhoneMobilePrefixes {
		if strings.HasPrefix(digits, prefix) {
			return Result{Valid: true}
		}
	}
	return Result{
		Valid:   false,
		Message: "mobile numbers must start with " + strings.Join(p.PhoneMobilePrefixes, ", ") + " after " + p.PhoneCountryCode,
	}
}

// CleanPhone strips spaces, dashes, and parentheses, returning the canonical
// digits-only form (with the leading plus preserved).
func CleanPhone(phone string) string {
	return phoneStripRegexp.ReplaceAllString(phone, "")
}

// FormatPhone inserts display spacing into an already-valid number
// (+355 69 123 4567 style: groups of 2, 3, and 4 digits). Input that does not
// match the policy's shape is returned unchanged. FormatPhone and CleanPhone
// round-trip: cleaning a formatted number yields the canonical form again.
func (p Policy) FormatPhone(phone string) string {
	cleaned := CleanPhone(phone)
	if !strings.HasPrefix(cleaned, p.PhoneCountryCode) || len(cleaned) != len(p.PhoneCountryCode)+nationalNumberLen {
		return phone
	}
	digits := cleaned[len(p.PhoneCountryCode):]
	return p.PhoneCountryCode + " " + digits[:2] + " " + digits[2:5] + " " + digits[5:]
}

// Info is a validated contact triple collected by the booking and
// inquiry forms.
type Info struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// FieldErrors is the error returned when one or more contact fields fail
// policy validation. The map is keyed by field name.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "contact validation failed: " + strings.Join(parts, "; ")
}

// Validate runs all three field validators and returns the first failure per
// field, keyed by field name. An empty map means the contact info is valid.
func (p Policy) Validate(info Info) map[string]string {
	fields := make(map[string]string)
	if r := ValidateName(info.Name); !r.Valid {
		fields["name"] = r.Message
	}
	if r := p.ValidateEmail(info.Email); !r.Valid {
		fields["email"] = r.Message
	}
	if r := p.ValidatePhone(info.Phone); !r.Valid {
		fields["phone"] = r.Message
	}
	return fields
}
