package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyStore struct {
	client valkey.Client
	prefix string
}

func NewValkeyStore(ctx context.Context, addr, password, prefix string) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	return &ValkeyStore{client: client, prefix: prefix}, nil
}

func (v *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := v.client.Do(ctx, v.client.B().Get().Key(v.prefix+key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("valkey get error: %w", err)
	}
	return data, true, nil
}

func (v *ValkeyStore) Set(ctx context.Context, key string, value []byte) error {
	cmd := v.client.B().Set().Key(v.prefix + key).Value(valkey.BinaryString(value)).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set error: %w", err)
	}
	return nil
}

func (v *ValkeyStore) Close() error {
	v.client.Close()
	return nil
}
