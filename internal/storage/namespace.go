package storage

import "context"

type namespacedStore struct {
	base   Store
	prefix string
}

// Namespace scopes every key of base under prefix, e.g. "device:42:cursed_user".
// Close is a no-op; the base store is owned by whoever opened it.
func Namespace(base Store, prefix string) Store {
	return &namespacedStore{base: base, prefix: prefix}
}

func (n *namespacedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.base.Get(ctx, Key(n.prefix, key))
}

func (n *namespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return n.base.Set(ctx, Key(n.prefix, key), value)
}

func (n *namespacedStore) Delete(ctx context.Context, key string) error {
	return n.base.Delete(ctx, Key(n.prefix, key))
}

func (n *namespacedStore) Close() error {
	return nil
}
