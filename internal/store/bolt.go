//go:build !sqlite

package store

import (
	"encoding/json"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/hooksmith/hooksmith/internal/model"
)

const boltBucketCheckouts = "checkouts" // key: URL@Rev -> Checkout JSON

type Bolt struct {
	db *bbolt.DB
}

func open(path string) (Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketCheckouts))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func checkoutKey(url, rev string) []byte {
	return []byte(url + "@" + rev)
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) SaveCheckout(c *model.Checkout) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketCheckouts)).Put(checkoutKey(c.URL, c.Rev), data)
	})
}

func (b *Bolt) GetCheckout(url, rev string) (*model.Checkout, error) {
	var c model.Checkout

	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucketCheckouts)).Get(checkoutKey(url, rev))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, &c)
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (b *Bolt) TouchCheckout(url, rev string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketCheckouts))

		data := bucket.Get(checkoutKey(url, rev))
		if data == nil {
			return ErrNotFound
		}

		var c model.Checkout
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}

		c.LastUsedAt = time.Now().UTC()

		updated, err := json.Marshal(&c)
		if err != nil {
			return err
		}

		return bucket.Put(checkoutKey(url, rev), updated)
	})
}

func (b *Bolt) ListCheckouts() ([]model.Checkout, error) {
	var checkouts []model.Checkout

	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketCheckouts)).ForEach(func(_, data []byte) error {
			var c model.Checkout
			if err := json.Unmarshal(data, &c); err != nil {
				return err
			}

			checkouts = append(checkouts, c)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(checkouts, func(i, j int) bool {
		if checkouts[i].URL != checkouts[j].URL {
			return checkouts[i].URL < checkouts[j].URL
		}

		return checkouts[i].Rev < checkouts[j].Rev
	})

	return checkouts, nil
}

func (b *Bolt) DeleteCheckout(url, rev string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketCheckouts)).Delete(checkoutKey(url, rev))
	})
}
