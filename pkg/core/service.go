package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Service is the command interface over an address book. Every mutation
// goes through it, so it is the single place that owns the in-memory book
// and talks to the Repository.
type Service struct {
	mu     sync.RWMutex
	repo   Repository
	book   *AddressBook
	logger *slog.Logger
	dirty  bool
}

// NewService creates a Service holding an empty book.
// Call Load to restore the persisted state.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:   repo,
		book:   NewAddressBook(),
		logger: logger,
	}
}

// CreateRecord builds a record from raw text. All invalid values are
// reported together.
func (s *Service) CreateRecord(name string, phones, emails []string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	rec := NewRecord(n)

	var errs []error
	for _, text := range phones {
		p, err := NewPhone(text)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rec.AddPhone(p)
	}
	for _, text := range emails {
		e, err := NewEmail(text)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rec.AddEmail(e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rec, nil
}

// Add stores rec, replacing any contact with the same name.
func (s *Service) Add(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, replaced := s.book.Get(rec.Name().String())
	s.book.Add(rec)
	s.dirty = true
	s.logger.Debug("record added", "name", rec.Name().String(), "replaced", replaced)
}

// Get returns the contact stored under name.
func (s *Service) Get(name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.book.Get(name)
	if !ok {
		return nil, notFound("contact", name)
	}
	return rec, nil
}

// Find searches names (case-insensitive substring) and phones/emails (exact).
func (s *Service) Find(term string) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Find(term)
}

// Match returns the contacts whose name matches a glob pattern.
func (s *Service) Match(pattern string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Match(pattern)
}

// Delete removes a contact and reports whether it existed.
func (s *Service) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.book.Delete(name) {
		s.logger.Debug("delete skipped, no such record", "name", name)
		return false
	}
	s.dirty = true
	s.logger.Debug("record deleted", "name", name)
	return true
}

// EditName renames a contact and moves it to its new key.
func (s *Service) EditName(old, newName string) error {
	n, err := NewName(newName)
	if err != nil {
		return err
	}
	return s.update(old, func(r *Record) error {
		r.EditName(n)
		return nil
	})
}

// EditPhone replaces a phone number of the named contact.
// An old value that is not a valid phone cannot be stored, so it is
// reported as not found.
func (s *Service) EditPhone(name, old, newPhone string) error {
	next, err := NewPhone(newPhone)
	if err != nil {
		return err
	}
	return s.update(name, func(r *Record) error {
		cur, err := NewPhone(old)
		if err != nil {
			return notFound(FieldPhone, old)
		}
		return r.EditPhone(cur, next)
	})
}

// EditEmail replaces an email address of the named contact.
func (s *Service) EditEmail(name, old, newEmail string) error {
	next, err := NewEmail(newEmail)
	if err != nil {
		return err
	}
	return s.update(name, func(r *Record) error {
		cur, err := NewEmail(old)
		if err != nil {
			return notFound(FieldEmail, old)
		}
		return r.EditEmail(cur, next)
	})
}

// AddPhone appends a phone number to the named contact.
func (s *Service) AddPhone(name, phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	return s.update(name, func(r *Record) error {
		r.AddPhone(p)
		return nil
	})
}

// AddEmail appends an email address to the named contact.
func (s *Service) AddEmail(name, email string) error {
	e, err := NewEmail(email)
	if err != nil {
		return err
	}
	return s.update(name, func(r *Record) error {
		r.AddEmail(e)
		return nil
	})
}

// RemovePhone removes the first matching phone number of the named contact.
func (s *Service) RemovePhone(name, phone string) error {
	return s.update(name, func(r *Record) error {
		p, err := NewPhone(phone)
		if err != nil {
			return notFound(FieldPhone, phone)
		}
		return r.RemovePhone(p)
	})
}

// RemoveEmail removes the first matching email address of the named contact.
func (s *Service) RemoveEmail(name, email string) error {
	return s.update(name, func(r *Record) error {
		e, err := NewEmail(email)
		if err != nil {
			return notFound(FieldEmail, email)
		}
		return r.RemoveEmail(e)
	})
}

func (s *Service) update(name string, fn func(*Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.book.Update(name, fn); err != nil {
		return err
	}
	s.dirty = true
	s.logger.Debug("record updated", "name", name)
	return nil
}

// ListAll renders every contact in insertion order.
func (s *Service) ListAll() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.ShowAll()
}

// Records returns copies of all contacts in insertion order.
func (s *Service) Records() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Records()
}

// Len returns the number of contacts.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Len()
}

// Dirty reports whether the book changed since the last Load or Save.
func (s *Service) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Load replaces the in-memory book with the persisted one. On error the
// current book is kept.
func (s *Service) Load(ctx context.Context) error {
	book, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.book = book
	s.dirty = false
	s.logger.Debug("address book loaded", "records", book.Len())
	return nil
}

// Save persists the whole book.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, s.book); err != nil {
		return err
	}
	s.dirty = false
	s.logger.Debug("address book saved", "records", s.book.Len())
	return nil
}

// Watch observes external changes of the persisted book if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}
