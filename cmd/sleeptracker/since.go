package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var sinceLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// parseSince accepts a fixed date layout or a natural phrase such as
// "last week" or "3 days ago", resolved relative to now.
func parseSince(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty --since value")
	}
	for _, layout := range sinceLayouts {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	res, err := w.Parse(text, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --since %q: %w", text, err)
	}
	if res == nil {
		return time.Time{}, fmt.Errorf("unrecognized --since value %q", text)
	}
	return res.Time, nil
}
