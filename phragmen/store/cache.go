package store

import (
	"io"
	"log"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/pkg/errors"
	"github.com/xxfoundation/wallet.xx.network/phragmen"
)

// Cache memoises predictions by the fingerprint of their input. Lookups hit
// an in-memory radix tree first and the (optional) store second, only when
// both miss the election is run. Records handed out are shared and must not
// be modified.
type Cache struct {
	params *phragmen.Params
	store  Store
	logs   *log.Logger

	memo *iradix.Tree
	mu   sync.RWMutex
}

// NewCache creates a cache that runs elections with the given params, the
// store may be nil to only keep records in memory
func NewCache(logw io.Writer, p *phragmen.Params, s Store) *Cache {
	return &Cache{
		params: p,
		store:  s,
		logs:   log.New(logw, "", 0),
		memo:   iradix.New(),
	}
}

// Predict returns the record for the voters and seat count
func (c *Cache) Predict(voters []phragmen.Voter, count int) (rec *Record, err error) {
	k := Fingerprint(c.params, voters, count)

	rec, ok := c.lookup(k)
	if ok {
		return rec, nil
	}

	if c.store != nil {
		rec, err = c.store.Get(k)
		switch err {
		case nil:
			c.logs.Printf("[INFO][%s] read prediction from store", k)
			c.remember(k, rec)
			return rec, nil
		case ErrRecordNotExist:
		default:
			return nil, errors.Wrap(err, "failed to read stored prediction")
		}
	}

	res, err := phragmen.SeqPhragmen(c.params, voters, count)
	if err != nil {
		return nil, err
	}

	rec = NewRecord(count, res)
	c.logs.Printf("[INFO][%s] elected %d of %d candidates from %d voters", k, len(res.Winners), len(res.Candidates), len(voters))

	if c.store != nil {
		err = c.store.Put(k, rec)
		if err != nil {
			c.logs.Printf("[ERRO][%s] failed to store prediction: %v", k, err)
			return nil, errors.Wrap(err, "failed to store prediction")
		}
	}

	c.remember(k, rec)
	return rec, nil
}

// Len returns the number of memoised records
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.memo.Len()
}

func (c *Cache) lookup(k Key) (rec *Record, ok bool) {
	c.mu.RLock()
	memo := c.memo //immutable, safe to read after unlocking
	c.mu.RUnlock()

	v, ok := memo.Get(k.Bytes())
	if !ok {
		return nil, false
	}

	return v.(*Record), true
}

func (c *Cache) remember(k Key, rec *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memo, _, _ = c.memo.Insert(k.Bytes(), rec)
}
