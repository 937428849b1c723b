package normalize

import (
	"strings"
	"time"
)

// Layouts that carry an unambiguous field order, tried before any numeric
// day/month guessing.
var unambiguousLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// Purely numeric layouts where day and month position is a convention, not
// derivable from the text itself. Which list applies is an explicit
// configuration choice.
var monthFirstLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"01.02.2006",
}

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
}

// toDate parses a raw date value and renders it as an ISO-8601 calendar
// date, discarding any time of day. Returns nil when the value is absent or
// no known layout matches.
func (n *Normalizer) toDate(v any) *string {
	s := strings.TrimSpace(fieldString(v))
	if s == "" {
		return nil
	}

	layouts := unambiguousLayouts
	if n.opts.DayFirst {
		layouts = append(layouts, dayFirstLayouts...)
	} else {
		layouts = append(layouts, monthFirstLayouts...)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}
