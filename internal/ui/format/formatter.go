package format

import (
	"fmt"
	"strings"
	"time"

	"sleeptracker/internal/modules/sleep/dto"
)

const qualityFallback = 3

type Formatter struct {
	strings Strings
	loc     *time.Location
}

func NewFormatter(s Strings, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{strings: s, loc: loc}
}

func (f *Formatter) Strings() Strings { return f.strings }

// Duration describes how long a night lasted in its largest whole unit,
// followed by the weekday it started on.
func (f *Formatter) Duration(startMilli, endMilli int64) string {
	elapsed := time.Duration(endMilli-startMilli) * time.Millisecond
	weekday := time.UnixMilli(startMilli).In(f.loc).Weekday().String()
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf(f.strings.Seconds, int64(elapsed/time.Second), weekday)
	case elapsed < time.Hour:
		return fmt.Sprintf(f.strings.Minutes, int64(elapsed/time.Minute), weekday)
	default:
		return fmt.Sprintf(f.strings.Hours, int64(elapsed/time.Hour), weekday)
	}
}

// QualityLabel returns the label for a rating. Values without a label of
// their own read as "OK".
func (f *Formatter) QualityLabel(quality int) string {
	if label, ok := f.strings.QualityLabels[quality]; ok {
		return label
	}
	return f.strings.QualityLabels[qualityFallback]
}

func (f *Formatter) Date(milli int64) string {
	return time.UnixMilli(milli).In(f.loc).Format(f.strings.DateLayout)
}

func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatNights renders the history as the multi-line summary shown under
// the tracker buttons.
func (f *Formatter) FormatNights(nights []dto.NightOutput) string {
	var b strings.Builder
	b.WriteString(f.strings.SummaryTitle)
	b.WriteString("\n\n")
	for _, n := range nights {
		fmt.Fprintf(&b, "%s\n\t%s\n", f.strings.StartLabel, f.Date(n.StartTimeMilli))
		if n.EndTimeMilli != n.StartTimeMilli {
			fmt.Fprintf(&b, "%s\n\t%s\n", f.strings.EndLabel, f.Date(n.EndTimeMilli))
			fmt.Fprintf(&b, "%s\t%s\n", f.strings.QualityLabel, f.QualityLabel(n.Quality))
			elapsed := time.Duration(n.EndTimeMilli-n.StartTimeMilli) * time.Millisecond
			fmt.Fprintf(&b, "%s\n\t%s\n\n", f.strings.ElapsedLabel, Elapsed(elapsed))
		}
	}
	return b.String()
}
