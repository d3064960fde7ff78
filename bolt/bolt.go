// Package bolt persists cookie jar snapshots in a bbolt database.
package bolt

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shiroyk/cookiejar"
	"go.etcd.io/bbolt"
)

const fileName = "cookies"

var (
	bucketName  = []byte("cookies")
	snapshotKey = []byte("snapshot")
)

// Store saves and loads jar snapshots in a single bbolt bucket.
type Store struct {
	db  *bbolt.DB
	log *slog.Logger
}

// Open opens (creating if needed) the cookie database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(dir, fileName), 0600, &bbolt.Options{
		Timeout:         time.Second,
		InitialMmapSize: 1024,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, log: slog.Default()}, nil
}

// Save writes the jar's current snapshot, replacing any previous one.
func (s *Store) Save(jar cookiejar.CookieJar) error {
	data, err := jar.Export()
	if err != nil {
		return fmt.Errorf("failed to export cookies: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(snapshotKey, data)
	})
	if err != nil {
		s.log.Error("failed to save cookies", "error", err)
		return err
	}
	return nil
}

// Load replaces the jar's state with the stored snapshot. A database
// with no snapshot leaves the jar untouched; a corrupt snapshot is an
// error from cookiejar.Import, passed through.
func (s *Store) Load(jar cookiejar.CookieJar) error {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(snapshotKey); v != nil {
			data = append(data, v...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	if err = jar.Import(data); err != nil {
		s.log.Error("failed to load cookies", "error", err)
		return err
	}
	return nil
}

// Close syncs and closes the database.
func (s *Store) Close() error {
	if err := s.db.Sync(); err != nil {
		return err
	}
	return s.db.Close()
}
