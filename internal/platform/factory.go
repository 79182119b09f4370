package platform

import (
	"context"

	"github.com/aretw0/abook/pkg/core"
)

// New initializes the storage and returns a service holding the persisted book.
//
//	svc, err := abook.New(ctx, "contacts.json", abook.WithVersioning(false))
//
// A malformed book is returned as an error matching core.ErrMalformed; the
// caller decides whether to abort.
func New(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(ctx, uri, opts...)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	service := core.NewService(repo, o.logger)
	if err := service.Load(ctx); err != nil {
		return nil, err
	}
	return service, nil
}
