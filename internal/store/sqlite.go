//go:build sqlite

package store

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hooksmith/hooksmith/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS checkouts (
	uid          TEXT NOT NULL,
	url          TEXT NOT NULL,
	rev          TEXT NOT NULL,
	path         TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	last_used_at TIMESTAMP NOT NULL,
	PRIMARY KEY (url, rev)
);
`

type sqliteStore struct {
	db *sql.DB
}

func open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Ping() error {
	return s.db.Ping()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) SaveCheckout(c *model.Checkout) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO checkouts (uid, url, rev, path, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.UID, c.URL, c.Rev, c.Path, c.CreatedAt, c.LastUsedAt,
	)

	return err
}

func (s *sqliteStore) GetCheckout(url, rev string) (*model.Checkout, error) {
	row := s.db.QueryRow(`
		SELECT uid, url, rev, path, created_at, last_used_at
		FROM checkouts WHERE url = ? AND rev = ?`, url, rev)

	var c model.Checkout

	err := row.Scan(&c.UID, &c.URL, &c.Rev, &c.Path, &c.CreatedAt, &c.LastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *sqliteStore) TouchCheckout(url, rev string) error {
	res, err := s.db.Exec(`
		UPDATE checkouts SET last_used_at = ? WHERE url = ? AND rev = ?`,
		time.Now().UTC(), url, rev,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *sqliteStore) ListCheckouts() ([]model.Checkout, error) {
	rows, err := s.db.Query(`
		SELECT uid, url, rev, path, created_at, last_used_at
		FROM checkouts ORDER BY url, rev`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var checkouts []model.Checkout

	for rows.Next() {
		var c model.Checkout
		if err := rows.Scan(&c.UID, &c.URL, &c.Rev, &c.Path, &c.CreatedAt, &c.LastUsedAt); err != nil {
			return nil, err
		}

		checkouts = append(checkouts, c)
	}

	return checkouts, rows.Err()
}

func (s *sqliteStore) DeleteCheckout(url, rev string) error {
	_, err := s.db.Exec(`DELETE FROM checkouts WHERE url = ? AND rev = ?`, url, rev)

	return err
}
