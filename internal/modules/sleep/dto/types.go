package dto

import "time"

type NightOutput struct {
	ID             int64
	StartTimeMilli int64
	EndTimeMilli   int64
	Quality        int
	InProgress     bool
}

func (n NightOutput) Start() time.Time { return time.UnixMilli(n.StartTimeMilli) }
func (n NightOutput) End() time.Time   { return time.UnixMilli(n.EndTimeMilli) }

// TrackerState is a consistent read of every value the tracker screen
// renders.
type TrackerState struct {
	Tonight *NightOutput
	Nights  []NightOutput
	// NightsVersion changes whenever Nights is replaced.
	NightsVersion     uint64
	NightsSummary     string
	StartVisible      bool
	StopVisible       bool
	ClearVisible      bool
	NavigateToQuality *NightOutput
	ShowSnackbar      bool
}

type RateInput struct {
	// NightID 0 rates the most recent night.
	NightID int64
	Quality int
}

type ListInput struct {
	Since time.Time
	Limit int
}

type ClearOutput struct {
	Deleted int64
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Dir       string
	Written   int
	Unchanged int
	Skipped   int
}

type JournalEntry struct {
	Night        NightOutput
	DurationText string
	QualityText  string
}
