// Package presenter turns stored posts and comments into response payloads
// with human readable Spanish timestamps.
package presenter

import (
	"fmt"
	"math"
	"time"
)

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Formatter renders timestamps relative to now. Times less than 24 hours old
// get a relative phrase, older ones an absolute date in loc.
type Formatter struct {
	now func() time.Time
	loc *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{now: time.Now, loc: loc}
}

// WithClock returns a copy that reads the current time from now.
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	cp := *f
	cp.now = now
	return &cp
}

func (f *Formatter) FormatTimestamp(t time.Time) string {
	d := f.now().Sub(t)
	if d < 0 {
		d = 0
	}
	if d >= 24*time.Hour {
		return AbsoluteDate(t.In(f.loc))
	}
	return RelativePhrase(d)
}

// AbsoluteDate renders "DD de <mes> de YYYY".
func AbsoluteDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// RelativePhrase renders a past duration shorter than a day.
func RelativePhrase(d time.Duration) string {
	seconds := math.Round(d.Seconds())
	minutes := math.Round(d.Minutes())
	hours := math.Round(d.Hours())
	switch {
	case seconds < 45:
		return "hace unos segundos"
	case minutes <= 1:
		return "hace un minuto"
	case minutes < 45:
		return fmt.Sprintf("hace %d minutos", int(minutes))
	case hours <= 1:
		return "hace una hora"
	case hours < 22:
		return fmt.Sprintf("hace %d horas", int(hours))
	default:
		return "hace un día"
	}
}
