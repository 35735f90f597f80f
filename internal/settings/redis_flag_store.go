package settings

import (
	"context"

	"github.com/redis/rueidis"
)

type RedisFlagStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisFlagStore(client rueidis.Client, keyPrefix string) *RedisFlagStore {
	return &RedisFlagStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisFlagStore) IsSet(ctx context.Context, key string) (bool, error) {
	cmd := r.client.B().Get().Key(r.prefix + key).Build()
	value, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, err
	}

	return value != "", nil
}

func (r *RedisFlagStore) Set(ctx context.Context, key, value string) error {
	cmd := r.client.B().Set().Key(r.prefix + key).Value(value).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisFlagStore) Clear(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(r.prefix + key).Build()
	return r.client.Do(ctx, cmd).Error()
}
