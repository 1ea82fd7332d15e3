package store

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var fixturesPrefix = Prefixer("fixtures")

// Fixture is a cached conversion result.
type Fixture struct {
	Source      string    `json:"source"`
	IMax        int       `json:"imax"`
	JMax        int       `json:"jmax"`
	ConvertedAt time.Time `json:"converted_at"`
	Document    []byte    `json:"document"`
}

// GetFixture returns the cached fixture for key, or nil if there is none.
func GetFixture(db *leveldb.DB, key Key) (*Fixture, error) {
	res, err := db.Get(fixturesPrefix(key.String()), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error getting fixture")
	}
	fixture := new(Fixture)
	if err := json.Unmarshal(res, fixture); err != nil {
		return nil, errors.Wrap(err, "error decoding fixture")
	}
	return fixture, nil
}

func SetFixtureTx(tx *leveldb.Transaction, key Key, fixture *Fixture) error {
	b, err := json.Marshal(fixture)
	if err != nil {
		return errors.Wrap(err, "error encoding fixture")
	}
	if err := tx.Put(fixturesPrefix(key.String()), b, nil); err != nil {
		return errors.Wrap(err, "error inserting fixture")
	}
	return nil
}

func CountFixtures(db *leveldb.DB) (int, error) {
	iter := db.NewIterator(util.BytesPrefix(fixturesPrefix("")), nil)
	defer iter.Release()
	var count int
	for iter.Next() {
		count++
	}
	if err := iter.Error(); err != nil {
		return 0, errors.Wrap(err, "error iterating fixtures")
	}
	return count, nil
}

// TruncateFixtures deletes every cached fixture.
func TruncateFixtures(tx *leveldb.Transaction) error {
	iter := tx.NewIterator(util.BytesPrefix(fixturesPrefix("")), nil)
	defer iter.Release()
	for iter.Next() {
		if err := tx.Delete(iter.Key(), nil); err != nil {
			return errors.Wrap(err, "error deleting fixture")
		}
	}
	return iter.Error()
}
