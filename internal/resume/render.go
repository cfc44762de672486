package resume

import (
	"time"

	"github.com/ekarpova/resumecraft/internal/common"
)

// DisplayDate renders a wire date ("2006-01-02") as "Jan 2006" for the
// read-only section views. Unparseable input is shown as-is.
func DisplayDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2006")
}

// FormatDateRange renders the date span of a work or education entry.
// A current entry always displays "<start> - Present", no matter what end
// date was supplied.
func FormatDateRange(start, end string, isCurrent bool) string {
	if isCurrent || end == "" {
		return DisplayDate(start) + " - Present"
	}
	return DisplayDate(start) + " - " + DisplayDate(end)
}
