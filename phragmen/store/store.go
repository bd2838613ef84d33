// Package store keeps predicted elections around so that an unchanged voter
// list doesn't trigger another election run.
package store

import "errors"

var (
	ErrRecordNotExist = errors.New("record doesn't exist")
)

// Store persists prediction records by the fingerprint of their input
type Store interface {
	Put(k Key, rec *Record) (err error)
	Get(k Key) (rec *Record, err error)
	Close() (err error)
}
