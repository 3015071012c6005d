// Package redisstore keeps key/value entries in Redis.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/Makepad-fr/todolist/internal/store"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type Store struct {
	client rueidis.Client
	prefix string
}

func Open(opt Options) (*Store, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{opt.Addr},
		Password:     opt.Password,
		SelectDB:     opt.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return New(client, opt.Prefix), nil
}

// New wraps an existing client.
func New(client rueidis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "todo:"
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(s.prefix + key).Build()
	b, err := s.client.Do(ctx, cmd).AsBytes()
	if rueidis.IsRedisNil(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(s.prefix + key).Value(rueidis.BinaryString(value)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *Store) Close() error {
	s.client.Close()
	return nil
}
