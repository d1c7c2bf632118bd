//go:build !js

package lexicon

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	bucketLemmas     = []byte("lemmas")
	bucketExceptions = []byte("exceptions")
	bucketMeta       = []byte("meta")
)

// BoltStore persists the provisioned lexicon between runs.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketLemmas, bucketExceptions, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Import replaces the stored lexicon in a single transaction and records info.
func (s *BoltStore) Import(entries []Entry, exceptions []Exception, info SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketLemmas, bucketExceptions} {
			if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		lemmas := make(map[string][]byte)
		for _, e := range entries {
			if !containsPOS(bytesToPOS(lemmas[e.Lemma]), e.POS) {
				lemmas[e.Lemma] = append(lemmas[e.Lemma], byte(e.POS))
			}
		}
		lb := tx.Bucket(bucketLemmas)
		for lemma, posList := range lemmas {
			if err := lb.Put([]byte(lemma), posList); err != nil {
				return err
			}
		}

		grouped := make(map[string][]Exception)
		for _, ex := range exceptions {
			grouped[ex.Inflected] = append(grouped[ex.Inflected], ex)
		}
		eb := tx.Bucket(bucketExceptions)
		for form, list := range grouped {
			data, err := json.Marshal(list)
			if err != nil {
				return err
			}
			if err := eb.Put([]byte(form), data); err != nil {
				return err
			}
		}

		return putSchemaInfo(tx, info)
	})
}

// Load reads the stored lexicon into memory.
func (s *BoltStore) Load() (*Lexicon, error) {
	var entries []Entry
	var exceptions []Exception
	err := s.db.View(func(tx *bbolt.Tx) error {
		err := tx.Bucket(bucketLemmas).ForEach(func(k, v []byte) error {
			for _, pos := range bytesToPOS(v) {
				entries = append(entries, Entry{POS: pos, Lemma: string(k)})
			}
			return nil
		})
		if err != nil {
			return err
		}
		return tx.Bucket(bucketExceptions).ForEach(func(k, v []byte) error {
			var list []Exception
			if err := json.Unmarshal(v, &list); err != nil {
				return fmt.Errorf("corrupt exception entry %q: %w", k, err)
			}
			for _, ex := range list {
				ex.Inflected = string(k)
				exceptions = append(exceptions, ex)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return New(entries, exceptions), nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func bytesToPOS(b []byte) []POS {
	out := make([]POS, len(b))
	for i, c := range b {
		out[i] = POS(c)
	}
	return out
}
