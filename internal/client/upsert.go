package client

import (
	"context"

	"github.com/fivetwenty-io/minds/pkg/minds"
)

// dropIfExists drops the named resource when exists finds it. A NotFound from
// exists or drop means there is nothing to drop; any other failure aborts the
// replace and is returned unchanged.
//
// The existence check, drop and subsequent create are separate requests, so
// a concurrent writer can slip in between them.
func dropIfExists(
	ctx context.Context,
	name string,
	exists func(ctx context.Context, name string) error,
	drop func(ctx context.Context, name string) error,
) error {
	err := exists(ctx, name)
	if err == nil {
		err = drop(ctx, name)
	}

	if err == nil {
		return nil
	}

	kind, ok := minds.KindOf(err)
	if !ok {
		return err
	}

	switch kind {
	case minds.KindNotFound:
		return nil
	case minds.KindForbidden, minds.KindUnauthorized, minds.KindUnsupported, minds.KindUnknown:
		return err
	default:
		return err
	}
}
