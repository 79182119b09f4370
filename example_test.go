package abook_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/abook"
)

// Example_basic creates a book, saves a contact and reads it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "abook-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	bookPath := filepath.Join(tmpDir, "contacts.json")

	svc, err := abook.New(ctx, bookPath, abook.WithAutoInit(true), abook.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	rec, err := svc.CreateRecord("Jan Kowalski", []string{"123456789"}, []string{"jan@example.com"})
	if err != nil {
		log.Fatal(err)
	}
	svc.Add(rec)
	if err := svc.Save(abook.WithChangeReason(ctx, "add Jan")); err != nil {
		log.Fatal(err)
	}

	reopened, err := abook.New(ctx, bookPath)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range reopened.Find("kowal") {
		fmt.Println(r)
	}
	// Output:
	// Name: Jan Kowalski, Phones: 123456789, Email: jan@example.com
}

// Example_validation shows that invalid values never reach the book.
func Example_validation() {
	tmpDir, err := os.MkdirTemp("", "abook-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := abook.New(context.Background(), filepath.Join(tmpDir, "contacts.yaml"), abook.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	_, err = svc.CreateRecord("Ann", []string{"12-34"}, []string{"not-an-email"})
	fmt.Println(err)
	// Output:
	// invalid phone number "12-34": expected 9 digits, e.g. 123456789
	// invalid email address "not-an-email"
}
