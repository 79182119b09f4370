package core

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\d{9}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9.-]+$`)
)

// ValidatePhone reports whether text is exactly 9 ASCII decimal digits.
func ValidatePhone(text string) bool {
	return phonePattern.MatchString(text)
}

// ValidateEmail reports whether text looks like local@domain.tld.
// The local part allows letters, digits and "_.+-"; domain labels allow
// letters, digits and hyphens, and at least one dot is required.
func ValidateEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// Name is the display name of a contact. It is also the key of the contact
// inside an AddressBook.
type Name struct {
	value string
}

// NewName trims text and fails if nothing is left.
func NewName(text string) (Name, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return Name{}, &ValidationError{Field: FieldName, Value: text}
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }

// Phone is a validated 9-digit phone number.
type Phone struct {
	value string
}

// NewPhone returns a ValidationError unless text passes ValidatePhone.
func NewPhone(text string) (Phone, error) {
	if !ValidatePhone(text) {
		return Phone{}, &ValidationError{Field: FieldPhone, Value: text}
	}
	return Phone{value: text}, nil
}

func (p Phone) String() string { return p.value }

// Email is a validated email address.
type Email struct {
	value string
}

// NewEmail returns a ValidationError unless text passes ValidateEmail.
func NewEmail(text string) (Email, error) {
	if !ValidateEmail(text) {
		return Email{}, &ValidationError{Field: FieldEmail, Value: text}
	}
	return Email{value: text}, nil
}

func (e Email) String() string { return e.value }
