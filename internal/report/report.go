// Package report builds the printable case report and renders it as PDF or
// as a spreadsheet.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/calculator"
	"github.com/ravison1985/advamolsanap/internal/models"
)

const (
	NoHearings = "No hearings recorded."
	NoPayments = "No payments recorded."
	NoClients  = "No clients recorded."

	blank        = "-"
	noteMaxRunes = 60
)

// Source is the read side of the record store the report is built from.
type Source interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	ListHearings(ctx context.Context) ([]models.Hearing, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

// Table is a titled grid of text cells. Empty is shown in place of the grid
// when there are no rows.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Empty  string
}

// Field is a label/value pair in a client's detail block.
type Field struct {
	Label string
	Value string
}

// ClientSection is the per-client part of the report.
type ClientSection struct {
	Name     string
	Details  []Field
	Hearings Table
	Payments Table
}

// Document is a report ready to be rendered.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Summary     Table
	Totals      []Field
	Sections    []ClientSection
}

// Generator builds reports from live store reads.
type Generator struct {
	source   Source
	currency string
}

// NewGenerator creates a Generator that formats amounts with currencySymbol.
func NewGenerator(source Source, currencySymbol string) *Generator {
	return &Generator{source: source, currency: currencySymbol}
}

// Currency is the symbol amounts are formatted with.
func (g *Generator) Currency() string {
	return g.currency
}

// Render builds a fresh document and writes it in the given format.
func (g *Generator) Render(ctx context.Context, w io.Writer, format Format, now time.Time) error {
	doc, err := g.Build(ctx, now)
	if err != nil {
		return err
	}

	switch format {
	case FormatPDF:
		return WritePDF(w, doc)
	case FormatXLSX:
		return WriteXLSX(w, doc)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// Build queries the store and lays out the report. It is called for every
// download so the report always reflects the latest writes.
func (g *Generator) Build(ctx context.Context, now time.Time) (*Document, error) {
	clients, err := g.source.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	hearings, err := g.source.ListHearings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hearings: %w", err)
	}
	payments, err := g.source.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	hearingsByClient := make(map[int64][]models.Hearing)
	for _, h := range hearings {
		hearingsByClient[h.ClientID] = append(hearingsByClient[h.ClientID], h)
	}
	paymentsByClient := make(map[int64][]models.Payment)
	for _, p := range payments {
		paymentsByClient[p.ClientID] = append(paymentsByClient[p.ClientID], p)
	}

	fees := calculator.CalculateClientFees(clients, payments)
	summary := calculator.SummarizeFees(fees)

	doc := &Document{
		Title:       "Case Report",
		GeneratedAt: now,
		Summary: Table{
			Title:  "Client Summary",
			Header: []string{"Name", "Case Details", "Contact", "First Visit", "Agreed Fee", "Status", "Commitment"},
			Empty:  NoClients,
		},
		Totals: []Field{
			{"Total agreed fees", g.money(summary.TotalFee)},
			{"Total received", g.money(summary.TotalPaid)},
			{"Total pending", g.money(summary.Pending)},
		},
	}

	for _, row := range fees {
		c := row.Client
		doc.Summary.Rows = append(doc.Summary.Rows, []string{
			c.Name,
			orBlank(c.CaseDetails),
			orBlank(c.Contact),
			orBlank(models.DateOnly(c.FirstVisitDate)),
			g.money(c.AgreedFee),
			orBlank(string(c.PaymentStatus)),
			orBlank(models.DateOnly(c.CommitmentDate)),
		})

		doc.Sections = append(doc.Sections, ClientSection{
			Name:     c.Name,
			Details:  g.details(row),
			Hearings: hearingTable(hearingsByClient[c.ID]),
			Payments: g.paymentTable(paymentsByClient[c.ID]),
		})
	}

	return doc, nil
}

func (g *Generator) details(row calculator.ClientFees) []Field {
	c := row.Client
	return []Field{
		{"Case details", orBlank(c.CaseDetails)},
		{"Contact", orBlank(c.Contact)},
		{"Court", orBlank(c.Court)},
		{"Case no.", orBlank(c.CaseNumber)},
		{"Stage", orBlank(c.Stage)},
		{"File no.", orBlank(c.FileNumber)},
		{"Role", orBlank(c.PartyRole)},
		{"First visit", orBlank(models.DateOnly(c.FirstVisitDate))},
		{"Commitment date", orBlank(models.DateOnly(c.CommitmentDate))},
		{"Status", orBlank(string(c.PaymentStatus))},
		{"Agreed fee", g.money(c.AgreedFee)},
		{"Paid", g.money(row.Paid)},
		{"Pending", g.money(row.Pending)},
	}
}

func hearingTable(hearings []models.Hearing) Table {
	t := Table{
		Title:  "Hearings",
		Header: []string{"Date", "Note"},
		Empty:  NoHearings,
	}
	for _, h := range hearings {
		t.Rows = append(t.Rows, []string{orBlank(h.Date), orBlank(truncate(h.Note, noteMaxRunes))})
	}
	return t
}

func (g *Generator) paymentTable(payments []models.Payment) Table {
	t := Table{
		Title:  "Payments",
		Header: []string{"Date", "Amount", "Mode", "Note"},
		Empty:  NoPayments,
	}
	for _, p := range payments {
		t.Rows = append(t.Rows, []string{
			orBlank(p.Date),
			g.money(p.Amount),
			orBlank(string(p.Mode)),
			orBlank(truncate(p.Note, noteMaxRunes)),
		})
	}
	return t
}

func (g *Generator) money(d decimal.Decimal) string {
	return FormatMoney(g.currency, d)
}

// FormatMoney formats an amount with thousands separators and two decimals,
// prefixed by symbol when one is given.
func FormatMoney(symbol string, d decimal.Decimal) string {
	s := humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
	if symbol == "" {
		return s
	}
	return symbol + " " + s
}

func orBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return blank
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-3]) + "..."
}
