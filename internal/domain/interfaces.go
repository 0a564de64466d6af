package domain

import "context"

// MovieSource is the metadata API boundary.
type MovieSource interface {
	Trending(ctx context.Context) ([]Movie, error)
	NowPlaying(ctx context.Context, page int) (Page, error)
	Search(ctx context.Context, query string) ([]Movie, error)
	MovieDetail(ctx context.Context, id int) (*MovieDetail, error)
}

// KeyValueStore is durable local storage. Values are opaque bytes; callers
// own the encoding.
type KeyValueStore interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// URLOpener opens a URL outside the terminal (system browser).
type URLOpener interface {
	Open(url string) error
}
