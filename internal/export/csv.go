package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// encodeCSV renders each section as an UPPERCASE name line followed by
// a header row and one row per record, with a blank line between
// sections. A section with nothing to show renders its name line only.
//
// The header and data rows go through encoding/csv, so values
// containing commas or quotes ("Tokyo, Japan") are quoted correctly.
// The name lines are single uppercase words and are written directly.
func encodeCSV(sections []section) ([]byte, error) {
	var buf bytes.Buffer

	for i, s := range sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "%s\n", strings.ToUpper(s.key))

		if len(s.rows) == 0 {
			continue
		}

		w := csv.NewWriter(&buf)
		if err := w.Write(s.headers); err != nil {
			return nil, err
		}
		for _, row := range s.rows {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
