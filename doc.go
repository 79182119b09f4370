// Package abook is the composition root of the abook address book.
//
// It connects the core contact model (pkg/core) with the file store
// (pkg/adapters/fs) and optional Git versioning (pkg/git) using the
// functional options of internal/platform.
//
// Features:
//
//   - **Validated fields**: names, 9-digit phone numbers and email addresses
//     are checked once, at construction.
//   - **Ordered book**: contacts keep their insertion order, also on disk.
//   - **Atomic saves**: the whole book is written to a temp file and renamed.
//   - **JSON or YAML**: the format follows the book file extension.
//   - **Optional history**: a book next to a .git is committed on every save.
//
// Usage:
//
//	svc, err := abook.New(ctx, "contacts.json",
//		abook.WithAutoInit(true),
//		abook.WithLogger(logger),
//	)
//
//	rec, err := svc.CreateRecord("Jan Kowalski", []string{"123456789"}, nil)
//	svc.Add(rec)
//	err = svc.Save(abook.WithChangeReason(ctx, "add Jan"))
package abook
