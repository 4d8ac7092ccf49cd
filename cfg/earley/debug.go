package earley

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

func dumpState(c *Chart, stateno uint64) {
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	for n, item := range c.set(stateno).values() {
		tracer().Debugf("[%2d] %s", n+1, item)
	}
}

func itemSetString(items []*Item) string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, item := range items {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump writes all item sets of the chart to the trace.
func (c *Chart) Dump() {
	if c == nil {
		return
	}
	for k := range c.sets {
		dumpState(c, uint64(k))
	}
}

// WriteTable renders the chart as a table, one row per item, with columns for
// position, item, span and the completed items recorded as backpointers.
func (c *Chart) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "#", "Item", "Span", "Completed By"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for k, S := range c.sets {
		for n, item := range S.values() {
			var by []string
			for _, child := range item.completedBy {
				by = append(by, child.String())
			}
			table.Append([]string{
				fmt.Sprintf("%d", k),
				fmt.Sprintf("%d", n+1),
				item.String(),
				item.Span().String(),
				strings.Join(by, " "),
			})
		}
	}
	table.Render()
}
