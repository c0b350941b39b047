// Package report prints KPIs and ranked views as console tables.
package report

import (
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/render"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	heading = color.New(color.FgYellow, color.Bold)
	muted   = color.New(color.FgHiBlack)

	swedish = message.NewPrinter(language.Swedish)
)

func KPIs(w io.Writer, k domain.KPIs) {
	heading.Fprintln(w, "\nKey figures")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Figure", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk([][]string{
		{"Applications", strconv.Itoa(k.TotalApplications)},
		{"Approved applications", strconv.Itoa(k.ApprovedApplications)},
		{"Approval rate", swedish.Sprintf("%.2f%%", k.ApprovalRate)},
		{"Requested seats", formatNumber(k.TotalRequestedSeats)},
		{"Approved seats", formatNumber(k.TotalApprovedSeats)},
		{"Organizers", strconv.Itoa(k.DistinctOrganizers)},
		{"Mean YH points", swedish.Sprintf("%.2f", k.MeanYHPoints)},
	})
	table.Render()
}

// View prints v as a ranked table. Records without rank are numbered in order.
func View(w io.Writer, title string, v *domain.View) {
	heading.Fprintln(w, "\n"+title)
	if len(v.Records) == 0 {
		muted.Fprintln(w, "no data")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", string(v.Measure), "Records"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	for i, r := range v.Records {
		rank := r.Rank
		if rank == 0 {
			rank = i + 1
		}
		table.Append([]string{
			strconv.Itoa(rank),
			render.Label(r, v.Fields),
			formatNumber(r.Value),
			strconv.Itoa(r.Count),
		})
	}
	table.Render()

	if v.Dropped > 0 {
		muted.Fprintf(w, "%d records left out (no %s)\n", v.Dropped, groupName(v.Fields))
	}
}

func groupName(fields []domain.Field) string {
	if len(fields) == 0 {
		return "key"
	}
	return string(fields[len(fields)-1])
}

// formatNumber prints integers without decimals, Swedish grouping and decimal comma.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return swedish.Sprintf("%.0f", v)
	}
	return swedish.Sprintf("%.2f", v)
}
