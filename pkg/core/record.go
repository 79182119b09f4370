package core

import (
	"fmt"
	"slices"
	"strings"
)

// Record is a single contact: one name plus ordered phones and emails.
// Duplicated phones or emails are allowed.
type Record struct {
	name   Name
	phones []Phone
	emails []Email
}

// NewRecord creates a record with no phones and no emails.
func NewRecord(name Name) *Record {
	return &Record{name: name}
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Emails returns a copy of the email list.
func (r *Record) Emails() []Email { return slices.Clone(r.emails) }

func (r *Record) AddPhone(p Phone) { r.phones = append(r.phones, p) }

func (r *Record) AddEmail(e Email) { r.emails = append(r.emails, e) }

// RemovePhone removes the first occurrence of p.
func (r *Record) RemovePhone(p Phone) error {
	i := slices.Index(r.phones, p)
	if i < 0 {
		return notFound(FieldPhone, p.value)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// RemoveEmail removes the first occurrence of e.
func (r *Record) RemoveEmail(e Email) error {
	i := slices.Index(r.emails, e)
	if i < 0 {
		return notFound(FieldEmail, e.value)
	}
	r.emails = slices.Delete(r.emails, i, i+1)
	return nil
}

// EditPhone replaces old with next. The new number goes to the end of the
// list. If old is missing the record is left untouched.
func (r *Record) EditPhone(old, next Phone) error {
	if err := r.RemovePhone(old); err != nil {
		return err
	}
	r.AddPhone(next)
	return nil
}

// EditEmail replaces old with next, with the same rules as EditPhone.
func (r *Record) EditEmail(old, next Email) error {
	if err := r.RemoveEmail(old); err != nil {
		return err
	}
	r.AddEmail(next)
	return nil
}

// EditName changes the name in place. It does not re-key the record inside
// an AddressBook; use AddressBook.Rename for that.
func (r *Record) EditName(n Name) { r.name = n }

// HasPhone reports whether text equals one of the phone numbers.
func (r *Record) HasPhone(text string) bool {
	return slices.ContainsFunc(r.phones, func(p Phone) bool { return p.value == text })
}

// HasEmail reports whether text equals one of the email addresses.
func (r *Record) HasEmail(text string) bool {
	return slices.ContainsFunc(r.emails, func(e Email) bool { return e.value == text })
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	return &Record{
		name:   r.name,
		phones: slices.Clone(r.phones),
		emails: slices.Clone(r.emails),
	}
}

func (r *Record) String() string {
	return fmt.Sprintf("Name: %s, Phones: %s, Email: %s",
		r.name.value, joinValues(r.phones), joinValues(r.emails))
}

func joinValues[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
