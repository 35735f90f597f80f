package settings

import (
	"context"
)

const (
	// FirstLaunchKey records that the one-time seed import has completed.
	FirstLaunchKey = "firstLaunch"

	FirstLaunchValue = "The data has already been uploaded"
)

// FlagStore is a small key/value settings store. A key counts as set when
// it holds a non-empty value.
type FlagStore interface {
	IsSet(ctx context.Context, key string) (bool, error)

	Set(ctx context.Context, key, value string) error

	Clear(ctx context.Context, key string) error
}
