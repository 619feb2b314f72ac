package invoices

// The invoice tables live in an external database this service only reads.
// Column and JSON field names follow that schema (German accounting terms)
// so responses stay byte-compatible with the existing frontend.

// InvoiceSummary is the tree-view row: just enough to render the list.
type InvoiceSummary struct {
	ID            int64   `json:"id"`
	Datum         *string `json:"datum"`
	Nummer        *string `json:"nummer"`
	ErbringerName *string `json:"erbringer_name"`
}

// LineItem is one row of leistungen attached to an invoice.
type LineItem struct {
	ID          int64   `json:"id"`
	Bezeichnung *string `json:"bezeichnung"`
	Menge       *string `json:"menge"`
	Wert        *string `json:"wert"`
}

// OrderPosition is one row of bestellpositionen attached to an order.
type OrderPosition struct {
	ID          int64   `json:"id"`
	Bezeichnung *string `json:"bezeichnung"`
	Menge       *string `json:"menge"`
	Einzelpreis *string `json:"einzelpreis"`
}

// Order is the bestellung linked to an invoice via its bestellnummer.
type Order struct {
	ID               int64           `json:"id"`
	Bestellnummer    *string         `json:"bestellnummer"`
	Datum            *string         `json:"datum"`
	Status           *string         `json:"status"`
	Lieferadresse    *string         `json:"lieferadresse"`
	Rechnungsadresse *string         `json:"rechnungsadresse"`
	Versandart       *string         `json:"versandart"`
	Versandkosten    *string         `json:"versandkosten"`
	Rabatt           *string         `json:"rabatt"`
	MwSt             *string         `json:"mwst"`
	Zwischensumme    *string         `json:"zwischensumme"`
	Gesamtwert       *string         `json:"gesamtwert"`
	Positionen       []OrderPosition `json:"positionen"`
}

// Invoice is the full detail view: the rechnungen row plus its line items
// and, when linked, the order with its positions.
type Invoice struct {
	ID                    int64      `json:"id"`
	CreatedAt             *string    `json:"created_at"`
	Datum                 *string    `json:"datum"`
	Nummer                *string    `json:"nummer"`
	Bestellnummer         *string    `json:"bestellnummer"`
	Gesamtpreis           *string    `json:"gesamtpreis"`
	ErbringerName         *string    `json:"erbringer_name"`
	ErbringerAnschrift    *string    `json:"erbringer_anschrift"`
	ErbringerSteuernummer *string    `json:"erbringer_steuernummer"`
	ErbringerUmsatzsteuer *string    `json:"erbringer_umsatzsteuer"`
	EmpfaengerName        *string    `json:"empfaenger_name"`
	EmpfaengerAnschrift   *string    `json:"empfaenger_anschrift"`
	Leistungen            []LineItem `json:"leistungen"`
	Bestellung            *Order     `json:"bestellung"`
}
