// Package orderlog keeps a local sqlite history of placed baskets.
package orderlog

import (
	"context"
	"database/sql"
	"time"

	"dominos-uk/lib/dominos"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Log struct {
	db *sql.DB
}

// Open opens (and if needed creates) the order log at the given path.
// Use ":memory:" for a throwaway log.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

type Entry struct {
	ID        int64
	StoreName string
	Postcode  string
	Total     string
	PlacedAt  time.Time
}

// Record stores a basket snapshot along with the store it was ordered from.
func (l *Log) Record(ctx context.Context, store *dominos.Store, postcode string, basket *dominos.Basket) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO orders (store_name, postcode, total, placed_at) VALUES (?, ?, ?, ?)`,
		store.Name, postcode, basket.TotalPrice, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, item := range basket.Items {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO order_items (order_id, product_id, name, size_id, quantity, price)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Name, int(item.SizeID), item.Quantity, item.Price,
		)
		if err != nil {
			return 0, err
		}
	}

	return orderID, tx.Commit()
}

// Recent returns the newest orders first, at most limit of them.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT id, store_name, postcode, total, placed_at
		 FROM orders ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var placedAt string
		err = rows.Scan(&entry.ID, &entry.StoreName, &entry.Postcode, &entry.Total, &placedAt)
		if err != nil {
			return nil, err
		}
		entry.PlacedAt, err = time.Parse(time.RFC3339, placedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Items returns the basket lines recorded for one order, in insertion
// order.
func (l *Log) Items(ctx context.Context, orderID int64) ([]dominos.BasketItem, error) {
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT product_id, name, size_id, quantity, price
		 FROM order_items WHERE order_id = ? ORDER BY rowid`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []dominos.BasketItem
	for rows.Next() {
		var item dominos.BasketItem
		var sizeID int
		err = rows.Scan(&item.ProductID, &item.Name, &sizeID, &item.Quantity, &item.Price)
		if err != nil {
			return nil, err
		}
		item.SizeID = dominos.Variant(sizeID)
		items = append(items, item)
	}
	return items, rows.Err()
}
