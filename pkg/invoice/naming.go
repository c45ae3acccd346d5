package invoice

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Numbering selects how missing invoice numbers are synthesised.
type Numbering string

const (
	// NumberingTimestamp yields INV-YYYYMMDD-HHMMSS. Two invoices generated in the same
	// second share a number.
	NumberingTimestamp Numbering = "timestamp"
	// NumberingUUID yields INV-YYYYMMDD-XXXXXXXX from a random UUID.
	NumberingUUID Numbering = "uuid"
)

// DateLayout is the format of default invoice dates.
const DateLayout = "2006-01-02"

// Valid reports whether n names a known scheme. The empty value means timestamp.
func (n Numbering) Valid() bool {
	switch n {
	case "", NumberingTimestamp, NumberingUUID:
		return true
	}
	return false
}

// NextNumber synthesises an invoice number for the given instant.
func NextNumber(now time.Time, scheme Numbering) string {
	day := now.Format("20060102")
	if scheme == NumberingUUID {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		return fmt.Sprintf("INV-%s-%s", day, strings.ToUpper(id[:8]))
	}
	return fmt.Sprintf("INV-%s-%s", day, now.Format("150405"))
}

// SafeName replaces spaces and path separators with underscores so the result can be
// embedded in a filename.
func SafeName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == os.PathSeparator {
			return '_'
		}
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, s)
}

// Filename is the published document name for a record.
func Filename(r *Record, ext string) string {
	return fmt.Sprintf("Invoice_%s_%s.%s", SafeName(r.Number), SafeName(r.Student), strings.TrimPrefix(ext, "."))
}
