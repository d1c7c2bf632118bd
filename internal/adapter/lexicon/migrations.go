//go:build !js

package lexicon

import (
	"encoding/json"

	"go.etcd.io/bbolt"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keySource        = []byte("source")
)

// SchemaInfo records what was imported into the store.
type SchemaInfo struct {
	Version int    `json:"version"`
	Source  string `json:"source"`
}

// GetSchemaInfo retrieves the schema info; a fresh store yields the zero value.
func (s *BoltStore) GetSchemaInfo() (SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if data := b.Get(keySchemaVersion); data != nil {
			if err := json.Unmarshal(data, &info.Version); err != nil {
				info.Version = 0
			}
		}
		if data := b.Get(keySource); data != nil {
			info.Source = string(data)
		}
		return nil
	})
	return info, err
}

func putSchemaInfo(tx *bbolt.Tx, info SchemaInfo) error {
	b := tx.Bucket(bucketMeta)
	versionData, err := json.Marshal(info.Version)
	if err != nil {
		return err
	}
	if err := b.Put(keySchemaVersion, versionData); err != nil {
		return err
	}
	return b.Put(keySource, []byte(info.Source))
}

// NeedsImport reports whether the stored lexicon must be (re)fetched for source.
func (s *BoltStore) NeedsImport(source string) (bool, string, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return false, "", err
	}
	switch {
	case info.Version == 0:
		return true, "no lexicon stored", nil
	case info.Version != CurrentSchemaVersion:
		return true, "schema version changed", nil
	case info.Source != source:
		return true, "lexicon source changed", nil
	}
	return false, "", nil
}
