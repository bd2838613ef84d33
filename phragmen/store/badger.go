package store

import (
	"io/ioutil"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
)

// Badger is a store implementation backed by a badger database
type Badger struct {
	db *badger.DB
}

// TempBadger creates a badger store in a temporary directory
func TempBadger() (s *Badger, clean func()) {
	dir, err := ioutil.TempDir("", "phragmen_badger_")
	if err != nil {
		panic("failed to create tempdir: " + err.Error())
	}

	s, err = NewBadger(dir)
	if err != nil {
		panic("failed to create store: " + err.Error())
	}

	return s, func() {
		s.Close()
		err = os.RemoveAll(dir)
		if err != nil {
			panic("faild to remove dir: " + err.Error())
		}
	}
}

// NewBadger opens or creates a badger store in dir
func NewBadger(dir string) (s *Badger, err error) {
	s = &Badger{}

	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	s.db, err = badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open db")
	}

	return
}

// Put writes the record, replacing any existing record
func (s *Badger) Put(k Key, rec *Record) (err error) {
	d, err := encode(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k.Bytes(), d)
	})
}

// Get reads a record from the store
func (s *Badger) Get(k Key) (rec *Record, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		it, err := txn.Get(k.Bytes())
		if err == badger.ErrKeyNotFound {
			return ErrRecordNotExist
		} else if err != nil {
			return errors.Wrap(err, "failed to get record")
		}

		d, err := it.Value()
		if err != nil {
			return errors.Wrap(err, "failed to read record value")
		}

		rec, err = decode(d)
		return err
	})

	return
}

// Close the underlying database
func (s *Badger) Close() (err error) {
	return s.db.Close()
}
