// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/pkg/optional"
	"github.com/taibuivan/citely/pkg/slice"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleDouble)
	t.Style().Options.SeparateRows = false
	return t
}

func header(labels ...string) table.Row {
	row := make(table.Row, 0, len(labels))
	for _, label := range labels {
		row = append(row, text.FgGreen.Sprint(label))
	}
	return row
}

// renderSources prints one row per source. Sources without an id show "-".
func renderSources(out io.Writer, sources []source.Source) {
	t := newTable(out)
	t.AppendHeader(header("ID", "Type", "Title", "Author", "Year"))

	for i := range sources {
		id := "-"
		if sources[i].HasID() {
			id = optional.String(sources[i].ID)
		}
		t.AppendRow(table.Row{id, sources[i].Type, sources[i].Title, sources[i].Author, optional.String(sources[i].Year)})
	}

	t.AppendFooter(table.Row{"", "", "", "Total", len(sources)})
	t.Render()
}

// renderSource prints the present fields of one source as key/value rows.
func renderSource(out io.Writer, src source.Source) {
	t := newTable(out)
	t.AppendHeader(header("Field", "Value"))

	t.AppendRow(table.Row{"id", optional.String(src.ID)})
	t.AppendRow(table.Row{"type", src.Type})
	t.AppendRow(table.Row{"title", src.Title})
	t.AppendRow(table.Row{"author", src.Author})

	type field struct {
		name    string
		value   string
		present bool
	}
	optionalRows := []field{
		{"year", optional.String(src.Year), src.Year != nil},
		{"publisher", optional.String(src.Publisher), src.Publisher != nil},
		{"isbn", optional.String(src.ISBN), src.ISBN != nil},
		{"journal", optional.String(src.Journal), src.Journal != nil},
		{"doi", optional.String(src.DOI), src.DOI != nil},
		{"volume", optional.String(src.Volume), src.Volume != nil},
		{"issue", optional.String(src.Issue), src.Issue != nil},
		{"pages", optional.String(src.Pages), src.Pages != nil},
		{"platform", optional.String(src.Platform), src.Platform != nil},
		{"url", optional.String(src.URL), src.URL != nil},
		{"duration", optional.String(src.Duration), src.Duration != nil},
	}
	present := slice.Filter(optionalRows, func(f field) bool { return f.present })
	for _, row := range present {
		t.AppendRow(table.Row{row.name, row.value})
	}

	t.Render()
}
