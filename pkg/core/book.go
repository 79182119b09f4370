package core

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AddressBook is the ordered collection of contacts keyed by name.
// Iteration follows insertion order. Records handed in or out are copies,
// so the key and the stored record's name cannot drift apart.
type AddressBook struct {
	order   []string
	records map[string]*Record
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Len returns the number of contacts.
func (b *AddressBook) Len() int { return len(b.order) }

// Add stores a copy of rec under its name. An existing contact with the same
// name is replaced and keeps its position.
func (b *AddressBook) Add(rec *Record) {
	key := rec.name.value
	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}
	b.records[key] = rec.Clone()
}

// Get returns a copy of the contact stored under name.
func (b *AddressBook) Get(name string) (*Record, bool) {
	rec, ok := b.records[name]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Delete removes the contact stored under name and reports whether it existed.
func (b *AddressBook) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == name })
	return true
}

// Find returns every contact whose name contains term (case-insensitive),
// or that has a phone or email exactly equal to term.
func (b *AddressBook) Find(term string) []*Record {
	needle := strings.ToLower(term)
	var found []*Record
	for _, key := range b.order {
		rec := b.records[key]
		if strings.Contains(strings.ToLower(rec.name.value), needle) ||
			rec.HasPhone(term) || rec.HasEmail(term) {
			found = append(found, rec.Clone())
		}
	}
	return found
}

// Match returns the contacts whose name matches a glob pattern such as
// "Jan*" or "*Kowal?ki".
func (b *AddressBook) Match(pattern string) ([]*Record, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, &ValidationError{Field: FieldPattern, Value: pattern}
	}
	var found []*Record
	for _, key := range b.order {
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return nil, &ValidationError{Field: FieldPattern, Value: pattern}
		}
		if ok {
			found = append(found, b.records[key].Clone())
		}
	}
	return found, nil
}

// Update applies fn to a copy of the contact stored under name. The stored
// contact is only replaced when fn succeeds. If fn changed the name, the
// contact is re-keyed in place; a different contact already holding the new
// name is dropped.
func (b *AddressBook) Update(name string, fn func(*Record) error) error {
	cur, ok := b.records[name]
	if !ok {
		return notFound("contact", name)
	}

	next := cur.Clone()
	if err := fn(next); err != nil {
		return err
	}

	newKey := next.name.value
	if newKey == "" {
		return &ValidationError{Field: FieldName, Value: newKey}
	}
	if newKey == name {
		b.records[name] = next
		return nil
	}

	if _, taken := b.records[newKey]; taken {
		delete(b.records, newKey)
		b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == newKey })
	}
	b.order[slices.Index(b.order, name)] = newKey
	delete(b.records, name)
	b.records[newKey] = next
	return nil
}

// Rename moves the contact stored under old to newName.
func (b *AddressBook) Rename(old string, newName Name) error {
	return b.Update(old, func(r *Record) error {
		r.EditName(newName)
		return nil
	})
}

// Names returns the keys in insertion order.
func (b *AddressBook) Names() []string { return slices.Clone(b.order) }

// Records returns copies of all contacts in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key].Clone())
	}
	return out
}

// ShowAll renders every contact in insertion order. An empty result means
// the book is empty.
func (b *AddressBook) ShowAll() []string {
	out := make([]string, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key].String())
	}
	return out
}
