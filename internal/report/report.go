// Package report builds the downloadable budget summary. The document
// model carries the tested contract (section ordering and numeric content);
// the PDF layer is presentation only.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"homeledger/internal/core"
)

type (
	Row struct {
		Label  string
		Amount string
	}

	Section struct {
		Title string
		Rows  []Row
	}

	Document struct {
		Title    string
		Sections []Section
	}
)

// Build assembles a person's budget summary in the fixed section order:
// expenses, then total and leftover, then allocations, then per-paycheck
// allocations.
func Build(person core.Person, b core.Budget) Document {
	expenses := Section{Title: "Expenses"}
	for _, l := range b.Breakdown {
		expenses.Rows = append(expenses.Rows, row(l.Label, l.Amount))
	}
	expenses.Rows = append(expenses.Rows,
		row("Total Expenses", b.TotalExpenses),
		row("Leftover After Expenses", b.Leftover),
	)

	allocations := Section{Title: "Allocations From Leftover"}
	for _, l := range b.Allocations {
		allocations.Rows = append(allocations.Rows, row(l.Label, l.Amount))
	}

	perPaycheck := Section{Title: "Allocations per Paycheck"}
	for _, l := range b.PerPaycheck {
		perPaycheck.Rows = append(perPaycheck.Rows, row(l.Label, l.Amount))
	}

	return Document{
		Title:    fmt.Sprintf("%s's Budget Summary", person),
		Sections: []Section{expenses, allocations, perPaycheck},
	}
}

func row(label string, amount decimal.Decimal) Row {
	return Row{Label: label, Amount: "$" + core.FormatAmount(amount)}
}
