package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// textTable renders left-aligned columns sized by display width.
type textTable struct {
	headers []string
	rows    [][]string
}

func (t *textTable) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	return widths
}

func (t *textTable) render(w io.Writer) error {
	widths := t.widths()
	line := func(cells []string) string {
		padded := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				padded[i] = cell
			} else {
				padded[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	if _, err := fmt.Fprintln(w, line(t.headers)); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(w, line(row)); err != nil {
			return err
		}
	}
	return nil
}
