package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cafe-pos/cafe/internal/database"
)

// DraftMode distinguishes first-time order entry from amendment of an
// existing unpaid order. The two accept different quantity ranges.
type DraftMode int

const (
	// DraftCreate builds a brand-new order; quantities must be positive.
	DraftCreate DraftMode = iota
	// DraftAmend adjusts an existing unpaid order; negative quantities
	// reduce the recorded amount and the total by the same magnitude.
	DraftAmend
)

// Errors returned by draft accumulation and persistence.
var (
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrEmptyDraft       = errors.New("draft has no items")
	ErrDraftMode        = errors.New("draft mode does not match the operation")
)

// draftLine accumulates one distinct item across repeated entries.
type draftLine struct {
	item         database.MenuItem
	amount       int32
	comment      string
	contribution decimal.Decimal
}

// Draft accumulates the item entries of one interactive order session before
// anything is written. Repeated entry of the same item sums amounts, adds
// price contributions and joins comments behind a backslash separator.
type Draft struct {
	mode  DraftMode
	lines map[string]*draftLine
	names []string
}

// NewDraft creates an empty draft in the given mode.
func NewDraft(mode DraftMode) *Draft {
	return &Draft{
		mode:  mode,
		lines: make(map[string]*draftLine),
	}
}

// Mode returns the draft's mode.
func (d *Draft) Mode() DraftMode { return d.mode }

// Add records one item entry. A zero quantity cancels the entry silently.
// Negative quantities are rejected in create mode and accepted in amend mode,
// where they move the amount and the price contribution by the signed value.
func (d *Draft) Add(item database.MenuItem, quantity int32, comment string) error {
	if quantity == 0 {
		return nil
	}
	if quantity < 0 && d.mode == DraftCreate {
		return ErrNegativeQuantity
	}

	line, ok := d.lines[item.ItemName]
	if !ok {
		line = &draftLine{item: item, contribution: decimal.Zero}
		d.lines[item.ItemName] = line
		d.names = append(d.names, item.ItemName)
	}

	price := database.NumericToDecimal(item.Price)
	line.amount += quantity
	line.contribution = line.contribution.Add(price.Mul(decimal.NewFromInt32(quantity)))

	switch {
	case line.comment == "":
		line.comment = comment
	case comment != "":
		line.comment = line.comment + `\` + comment
	}
	return nil
}

// Empty reports whether no entry was recorded.
func (d *Draft) Empty() bool { return len(d.names) == 0 }

// Total sums the signed price contributions of every entry.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, name := range d.names {
		total = total.Add(d.lines[name].contribution)
	}
	return total
}

// Amount returns the accumulated net amount for an item, zero if untouched.
func (d *Draft) Amount(itemName string) int32 {
	if line, ok := d.lines[itemName]; ok {
		return line.amount
	}
	return 0
}

// Comment returns the joined comment for an item.
func (d *Draft) Comment(itemName string) string {
	if line, ok := d.lines[itemName]; ok {
		return line.comment
	}
	return ""
}

// Items returns the distinct item names in first-entry order.
func (d *Draft) Items() []string {
	return append([]string(nil), d.names...)
}
