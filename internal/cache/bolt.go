package cache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketEntries = []byte("entries")
)

// Bolt is a Store in a single bbolt file.
type Bolt struct {
	db *bbolt.DB
}

func OpenBolt(file string, timeout time.Duration) (*Bolt, error) {
	if file == "" {
		return nil, fmt.Errorf("cache: bolt: file is required")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	err := os.MkdirAll(filepath.Dir(file), 0755)
	if err != nil {
		return nil, fmt.Errorf("cache: bolt: create db dir: %w", err)
	}

	db, err := bbolt.Open(file, 0600, &bbolt.Options{
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: bolt: open %q: %w", file, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketEntries, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: bolt: initialize buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(_ context.Context, key Key) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(bucketEntries)
		if bk == nil {
			return fmt.Errorf("cache: bolt: entries bucket not found")
		}

		// Only valid for the life of the transaction.
		if data := bk.Get(key[:]); data != nil {
			value = bytes.Clone(data)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

func (b *Bolt) Put(_ context.Context, key Key, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(bucketEntries)
		if bk == nil {
			return fmt.Errorf("cache: bolt: entries bucket not found")
		}
		return bk.Put(key[:], value)
	})
}

func (b *Bolt) Close() error {
	err := b.db.Close()
	if err != nil {
		return fmt.Errorf("cache: bolt: close: %w", err)
	}
	return nil
}
