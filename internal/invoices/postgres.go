package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository over a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the external invoice database. The
// pool is pinged once so a bad DSN fails at startup, not on first request.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("invoices: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("invoices: ping: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}

func (r *PostgresRepository) List(ctx context.Context) ([]InvoiceSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, datum, nummer, erbringer_name FROM rechnungen`)
	if err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	defer rows.Close()

	var summaries []InvoiceSummary
	for rows.Next() {
		var s InvoiceSummary
		if err := rows.Scan(&s.ID, &s.Datum, &s.Nummer, &s.ErbringerName); err != nil {
			return nil, fmt.Errorf("invoices: scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	return summaries, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Invoice, error) {
	inv := &Invoice{Leistungen: []LineItem{}}

	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at, datum, nummer, bestellnummer, gesamtpreis,
			erbringer_name, erbringer_anschrift, erbringer_steuernummer,
			erbringer_umsatzsteuer, empfaenger_name, empfaenger_anschrift
		FROM rechnungen WHERE id = $1`, id).Scan(
		&inv.ID, &inv.CreatedAt, &inv.Datum, &inv.Nummer, &inv.Bestellnummer,
		&inv.Gesamtpreis, &inv.ErbringerName, &inv.ErbringerAnschrift,
		&inv.ErbringerSteuernummer, &inv.ErbringerUmsatzsteuer,
		&inv.EmpfaengerName, &inv.EmpfaengerAnschrift,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("invoices: get %d: %w", id, err)
	}

	// Line items link by invoice number, not invoice id.
	if inv.Nummer != nil {
		items, err := r.lineItems(ctx, *inv.Nummer)
		if err != nil {
			return nil, err
		}
		inv.Leistungen = items
	}

	if inv.Bestellnummer != nil {
		order, err := r.order(ctx, *inv.Bestellnummer)
		if err != nil {
			return nil, err
		}
		inv.Bestellung = order
	}

	return inv, nil
}

func (r *PostgresRepository) lineItems(ctx context.Context, nummer string) ([]LineItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, bezeichnung, menge, wert
		FROM leistungen WHERE rechnungs_nummer = $1`, nummer)
	if err != nil {
		return nil, fmt.Errorf("invoices: line items for %s: %w", nummer, err)
	}
	defer rows.Close()

	items := []LineItem{}
	for rows.Next() {
		var li LineItem
		if err := rows.Scan(&li.ID, &li.Bezeichnung, &li.Menge, &li.Wert); err != nil {
			return nil, fmt.Errorf("invoices: scan line item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoices: line items for %s: %w", nummer, err)
	}
	return items, nil
}

func (r *PostgresRepository) order(ctx context.Context, bestellnummer string) (*Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, bestellnummer, datum, status, lieferadresse,
			rechnungsadresse, versandart, versandkosten, rabatt, mwst,
			zwischensumme, gesamtwert
		FROM bestellungen WHERE bestellnummer = $1`, bestellnummer).Scan(
		&o.ID, &o.Bestellnummer, &o.Datum, &o.Status, &o.Lieferadresse,
		&o.Rechnungsadresse, &o.Versandart, &o.Versandkosten, &o.Rabatt,
		&o.MwSt, &o.Zwischensumme, &o.Gesamtwert,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// An invoice can reference an order that was never imported.
			return nil, nil
		}
		return nil, fmt.Errorf("invoices: order %s: %w", bestellnummer, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, bezeichnung, menge, einzelpreis
		FROM bestellpositionen WHERE bestellnummer = $1`, bestellnummer)
	if err != nil {
		return nil, fmt.Errorf("invoices: positions for %s: %w", bestellnummer, err)
	}
	defer rows.Close()

	o.Positionen = []OrderPosition{}
	for rows.Next() {
		var p OrderPosition
		if err := rows.Scan(&p.ID, &p.Bezeichnung, &p.Menge, &p.Einzelpreis); err != nil {
			return nil, fmt.Errorf("invoices: scan position: %w", err)
		}
		o.Positionen = append(o.Positionen, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoices: positions for %s: %w", bestellnummer, err)
	}

	return &o, nil
}
