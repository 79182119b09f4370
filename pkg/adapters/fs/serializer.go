package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/abook/pkg/core"
)

// SchemaVersion is the version stamped into every persisted book.
const SchemaVersion = 1

// Snapshot is the persisted layout of an address book. Records are kept as
// a list so insertion order survives a round trip.
type Snapshot struct {
	Version int          `json:"version" yaml:"version"`
	Records []RecordData `json:"records" yaml:"records"`
}

// RecordData is the persisted form of a single contact.
type RecordData struct {
	Name   string   `json:"name" yaml:"name"`
	Phones []string `json:"phones" yaml:"phones"`
	Emails []string `json:"emails" yaml:"emails"`
}

// NewSnapshot captures the full state of book.
func NewSnapshot(book *core.AddressBook) Snapshot {
	recs := book.Records()
	snap := Snapshot{
		Version: SchemaVersion,
		Records: make([]RecordData, 0, len(recs)),
	}
	for _, r := range recs {
		snap.Records = append(snap.Records, NewRecordData(r))
	}
	return snap
}

// NewRecordData converts a contact to its persisted form. Empty lists are
// kept as empty slices so they encode as [] rather than null.
func NewRecordData(r *core.Record) RecordData {
	data := RecordData{
		Name:   r.Name().String(),
		Phones: make([]string, 0),
		Emails: make([]string, 0),
	}
	for _, p := range r.Phones() {
		data.Phones = append(data.Phones, p.String())
	}
	for _, e := range r.Emails() {
		data.Emails = append(data.Emails, e.String())
	}
	return data
}

// Book rebuilds an address book, re-validating every stored value.
// Duplicate names follow the book's last-write-wins rule.
func (s Snapshot) Book() (*core.AddressBook, error) {
	switch {
	case s.Version == 0:
		return nil, errors.New("missing schema version")
	case s.Version > SchemaVersion:
		return nil, fmt.Errorf("unsupported schema version %d (max %d)", s.Version, SchemaVersion)
	}

	book := core.NewAddressBook()
	for i, data := range s.Records {
		name, err := core.NewName(data.Name)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec := core.NewRecord(name)
		for _, text := range data.Phones {
			p, err := core.NewPhone(text)
			if err != nil {
				return nil, fmt.Errorf("record %d (%s): %w", i, name, err)
			}
			rec.AddPhone(p)
		}
		for _, text := range data.Emails {
			e, err := core.NewEmail(text)
			if err != nil {
				return nil, fmt.Errorf("record %d (%s): %w", i, name, err)
			}
			rec.AddEmail(e)
		}
		book.Add(rec)
	}
	return book, nil
}

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse decodes a snapshot. Syntax errors are returned as is; the
	// repository turns them into a core.FormatError.
	Parse(r io.Reader) (Snapshot, error)
	// Serialize encodes a snapshot.
	Serialize(s Snapshot) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct {
	// Indent is the per-level indentation; empty means compact output.
	Indent string
}

// NewJSONSerializer creates a JSON serializer with two-space indentation.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Parse(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("invalid json: %w", err)
	}
	return snap, nil
}

func (s *JSONSerializer) Serialize(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if s.Indent != "" {
		enc.SetIndent("", s.Indent)
	}
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		// An empty document decodes to io.EOF; the zero snapshot then fails
		// the version check, which is the error worth reporting.
		if errors.Is(err, io.EOF) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return snap, nil
}

func (s *YAMLSerializer) Serialize(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(snap); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
