package domain

import (
	"fmt"
	"time"

	apperrors "sleeptracker/internal/platform/errors"
)

const (
	QualityUnrated = -1
	QualityMin     = 0
	QualityMax     = 5
)

// Night is one sleep session. It is in progress while its end equals its
// start and complete once the end is later.
type Night struct {
	ID             int64
	StartTimeMilli int64
	EndTimeMilli   int64
	Quality        int
}

func NewNight(startMilli int64) Night {
	return Night{StartTimeMilli: startMilli, EndTimeMilli: startMilli, Quality: QualityUnrated}
}

func (n Night) InProgress() bool {
	return n.EndTimeMilli == n.StartTimeMilli
}

func (n Night) Start() time.Time { return time.UnixMilli(n.StartTimeMilli) }
func (n Night) End() time.Time   { return time.UnixMilli(n.EndTimeMilli) }

func (n Night) Duration() time.Duration {
	return time.Duration(n.EndTimeMilli-n.StartTimeMilli) * time.Millisecond
}

// Complete ends the night at endMilli. An end that does not come after the
// start is moved one millisecond past it so the night never reads as in
// progress again.
func (n Night) Complete(endMilli int64) Night {
	if endMilli <= n.StartTimeMilli {
		endMilli = n.StartTimeMilli + 1
	}
	n.EndTimeMilli = endMilli
	return n
}

func (n Night) Rate(quality int) (Night, error) {
	if !ValidQuality(quality) {
		return n, fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuality, quality)
	}
	n.Quality = quality
	return n, nil
}

func ValidQuality(q int) bool {
	return q >= QualityMin && q <= QualityMax
}

func (n Night) Validate() error {
	if n.EndTimeMilli < n.StartTimeMilli {
		return fmt.Errorf("%w: night ends before it starts", apperrors.ErrInvalidInput)
	}
	if n.Quality != QualityUnrated && !ValidQuality(n.Quality) {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuality, n.Quality)
	}
	return nil
}
