package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

type (
	// Person identifies a household member. The set of valid persons is
	// owned by configuration, not by this package.
	Person string

	// Category is one of the closed set of expense categories.
	Category string

	// Date is a calendar date. The zero value means "unknown": such
	// records still count towards totals but are excluded from
	// date-bucketed aggregates.
	Date struct {
		time.Time
	}

	// Record is a single tracked expense in the ledger.
	Record struct {
		Owner    Person
		Date     Date
		Category Category
		Amount   decimal.Decimal
		Notes    string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyOwner      = errors.New("empty owner")
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryBills,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ParseCategory matches s against the closed category set, ignoring case
// and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string. An empty string yields the
// unknown date with no error; anything else that does not parse is an error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Unknown reports whether the date is missing.
func (d Date) Unknown() bool {
	return d.IsZero()
}

// String renders the date in the ledger wire format, or "" when unknown.
func (d Date) String() string {
	if d.Unknown() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (r Record) Validate() error {
	if strings.TrimSpace(string(r.Owner)) == "" {
		return ErrEmptyOwner
	}
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
