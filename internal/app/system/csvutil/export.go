// internal/app/system/csvutil/export.go
package csvutil

import "strings"

// Generate builds CSV text from a header list and string rows.
//
// The format mirrors the export files consumers already parse: lines
// joined with "\n", values joined with ",", and a value quoted only
// when it contains an embedded comma (quotes inside such a value are
// doubled). Output has len(rows)+1 lines, the first being the header.
func Generate(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		b.WriteByte('\n')
		for i, val := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escape(val))
		}
	}
	return b.String()
}

// escape quotes a value only when it contains an embedded comma.
func escape(val string) string {
	if !strings.Contains(val, ",") {
		return val
	}
	return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
}
