package store

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var boltBucketRecords = []byte{0x00}

// Bolt is a store implementation that uses the Bolt db
type Bolt struct {
	dir string
	bdb *bolt.DB
}

// TempBolt will create a Bolt store in a temporary directory, the returned
// function closes the store and removes the directory.
func TempBolt() (b *Bolt, clean func()) {
	dir, err := ioutil.TempDir("", "phragmen_bolt_")
	if err != nil {
		panic("store/bolt: " + err.Error())
	}

	b, err = NewBolt(dir)
	if err != nil {
		panic("store/bolt: " + err.Error())
	}

	return b, func() {
		b.Close()
		err = os.RemoveAll(dir)
		if err != nil {
			panic("store/bolt: failed to remove dir: " + err.Error())
		}
	}
}

// NewBolt will initialize a bolt store, the directory must exist
func NewBolt(dir string) (b *Bolt, err error) {
	b = &Bolt{dir: dir}

	//open or create the database file
	b.bdb, err = bolt.Open(filepath.Join(dir, "predictions.bolt"), 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "store/bolt: failed to open or create database file")
	}

	if err = b.bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucketRecords)
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "store/bolt: failed to create record bucket")
	}

	return
}

// Put writes the record, replacing any existing record
func (b *Bolt) Put(k Key, rec *Record) (err error) {
	d, err := encode(rec)
	if err != nil {
		return err
	}

	return b.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucketRecords).Put(k.Bytes(), d)
	})
}

// Get reads a record from the store
func (b *Bolt) Get(k Key) (rec *Record, err error) {
	err = b.bdb.View(func(tx *bolt.Tx) error {
		d := tx.Bucket(boltBucketRecords).Get(k.Bytes())
		if d == nil {
			return ErrRecordNotExist
		}

		//bolt data is only valid during the transaction, decoding copies it
		rec, err = decode(d)
		return err
	})

	return
}

// Close the underlying database
func (b *Bolt) Close() (err error) {
	return b.bdb.Close()
}
