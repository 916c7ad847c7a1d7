package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/luckydeck/lobby/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketGames     = []byte("games")
	bucketProviders = []byte("providers")
)

// BoltSource reads a catalog snapshot from a BoltDB file. The file is a
// static seed: flag mutations made at runtime are never written back.
type BoltSource struct {
	path string
}

// NewBoltSource creates a source backed by the snapshot file at path.
func NewBoltSource(path string) *BoltSource {
	return &BoltSource{path: path}
}

func (s *BoltSource) Load() (Snapshot, error) {
	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer db.Close()

	var snap Snapshot
	err = db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketGames); b != nil {
			if err := b.ForEach(func(_, v []byte) error {
				var g domain.Game
				if err := json.Unmarshal(v, &g); err != nil {
					return err
				}
				snap.Games = append(snap.Games, g)
				return nil
			}); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketProviders); b != nil {
			return b.ForEach(func(_, v []byte) error {
				var p domain.Provider
				if err := json.Unmarshal(v, &p); err != nil {
					return err
				}
				snap.Providers = append(snap.Providers, p)
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}

	return snap, nil
}

// Seed writes a snapshot to a BoltDB file, replacing any existing
// buckets. Used by the CLI to convert a JSON catalog into a snapshot.
func Seed(path string, snap Snapshot) error {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketGames, bucketProviders} {
			if tx.Bucket(bucket) != nil {
				if err := tx.DeleteBucket(bucket); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}

		games := tx.Bucket(bucketGames)
		for i, g := range snap.Games {
			data, err := json.Marshal(g)
			if err != nil {
				return err
			}
			// Zero-padded sequence prefix keeps bolt's key iteration in
			// source order across Load calls.
			key := fmt.Sprintf("%08d:%s", i, g.ID)
			if err := games.Put([]byte(key), data); err != nil {
				return err
			}
		}

		providers := tx.Bucket(bucketProviders)
		for i, p := range snap.Providers {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			key := fmt.Sprintf("%08d:%s", i, p.ID)
			if err := providers.Put([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}
