// Package record serializes readings into the flat log line format:
// three tab-separated fields, timestamp, key count, and the pressed
// keys as |-joined scan_code/analog_value pairs.
package record

import (
	"strconv"
	"strings"

	"github.com/tsellick/keytrace/internal/reading"
)

// FieldSep separates the three record fields.
const FieldSep = "\t"

// PairSep joins the scan code and analog value tokens in the third field.
const PairSep = "|"

// LogRecord is one serialized reading. It is produced by Format and
// appended to the sink as-is, one per line.
type LogRecord string

func (r LogRecord) String() string { return string(r) }

// Format renders a reading as a LogRecord. It is deterministic and
// total; an empty reading yields an empty third field.
func Format(r reading.Reading) LogRecord {
	var b strings.Builder
	b.WriteString(floatString(r.Timestamp, 64))
	b.WriteString(FieldSep)
	b.WriteString(strconv.Itoa(len(r.Entries)))
	b.WriteString(FieldSep)
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteString(PairSep)
		}
		b.WriteString(strconv.Itoa(int(e.Code)))
		b.WriteString(PairSep)
		b.WriteString(floatString(float64(e.Value), 32))
	}
	return LogRecord(b.String())
}

// floatString renders a float as its shortest round-trip decimal,
// keeping a ".0" suffix on integral values so 3.0 does not collapse
// to "3" in the timestamp field.
func floatString(v float64, bits int) string {
	s := strconv.FormatFloat(v, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
