package format

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strings holds every user-visible text the tracker screens render. Fields
// left empty in a loaded file keep their English default.
type Strings struct {
	Seconds        string         `yaml:"seconds"`
	Minutes        string         `yaml:"minutes"`
	Hours          string         `yaml:"hours"`
	QualityLabels  map[int]string `yaml:"quality_labels"`
	SummaryTitle   string         `yaml:"summary_title"`
	StartLabel     string         `yaml:"start_label"`
	EndLabel       string         `yaml:"end_label"`
	QualityLabel   string         `yaml:"quality_label"`
	ElapsedLabel   string         `yaml:"elapsed_label"`
	DateLayout     string         `yaml:"date_layout"`
	ClearedMessage string         `yaml:"cleared_message"`
}

func DefaultStrings() Strings {
	return Strings{
		Seconds: "%d seconds on %s",
		Minutes: "%d minutes on %s",
		Hours:   "%d hours on %s",
		QualityLabels: map[int]string{
			-1: "--",
			0:  "Very bad",
			1:  "Poor",
			2:  "So-so",
			3:  "OK",
			4:  "Pretty good",
			5:  "Excellent",
		},
		SummaryTitle:   "Here is your sleep data:",
		StartLabel:     "Start:",
		EndLabel:       "End:",
		QualityLabel:   "Quality:",
		ElapsedLabel:   "Hours:Minutes:Seconds:",
		DateLayout:     "Monday Jan-02-2006 Time: 15:04",
		ClearedMessage: "All your data is gone forever.",
	}
}

// LoadStrings overlays the YAML file at path on the defaults. An empty path
// returns the defaults.
func LoadStrings(path string) (Strings, error) {
	s := DefaultStrings()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Strings{}, fmt.Errorf("read strings file: %w", err)
	}
	var loaded Strings
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return Strings{}, fmt.Errorf("parse strings file: %w", err)
	}
	s.merge(loaded)
	return s, nil
}

func (s *Strings) merge(o Strings) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&s.Seconds, o.Seconds)
	set(&s.Minutes, o.Minutes)
	set(&s.Hours, o.Hours)
	set(&s.SummaryTitle, o.SummaryTitle)
	set(&s.StartLabel, o.StartLabel)
	set(&s.EndLabel, o.EndLabel)
	set(&s.QualityLabel, o.QualityLabel)
	set(&s.ElapsedLabel, o.ElapsedLabel)
	set(&s.DateLayout, o.DateLayout)
	set(&s.ClearedMessage, o.ClearedMessage)
	for q, label := range o.QualityLabels {
		s.QualityLabels[q] = label
	}
}
