package timeslot

import (
	"fmt"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
)

var ErrUnknownWindow = errs.New("no such time window on this date")

// Option is one selectable entry of the schedule picker.
type Option struct {
	Label     string
	Immediate bool
	StartHour int
	Start     time.Time
	End       time.Time
}

func (o Option) Slot() request.TimeSlot {
	if o.Immediate {
		return request.Immediate()
	}
	return request.Scheduled(o.Start)
}

type Generator struct {
	clock     clock.Clock
	startHour int
	endHour   int
	width     int
}

func NewGenerator(clk clock.Clock, cfg config.ComposerConfig) *Generator {
	return &Generator{
		clock:     clk,
		startHour: cfg.DayStartHour,
		endHour:   cfg.DayEndHour,
		width:     int(cfg.SlotWidth / time.Hour),
	}
}

// Generate lists Immediate followed by the windows of date. On the current
// day a window is dropped once its start hour is not after the current hour.
// Dates are interpreted in the clock's location.
func (g *Generator) Generate(date time.Time) []Option {
	now := g.clock.Now()
	loc := now.Location()
	y, m, d := date.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	ny, nm, nd := now.Date()
	isToday := y == ny && m == nm && d == nd

	options := []Option{{Label: "Immediately", Immediate: true}}
	for h := g.startHour; h+g.width <= g.endHour; h += g.width {
		if isToday && h <= now.Hour() {
			continue
		}
		start := day.Add(time.Duration(h) * time.Hour)
		options = append(options, Option{
			Label:     fmt.Sprintf("%02d:00 - %02d:00", h, h+g.width),
			StartHour: h,
			Start:     start,
			End:       start.Add(time.Duration(g.width) * time.Hour),
		})
	}
	return options
}

// Lookup returns the window of date starting at startHour, provided it is
// still offered.
func (g *Generator) Lookup(date time.Time, startHour int) (request.TimeSlot, error) {
	for _, o := range g.Generate(date) {
		if !o.Immediate && o.StartHour == startHour {
			return o.Slot(), nil
		}
	}
	return request.TimeSlot{}, errs.Mark(ErrUnknownWindow, errs.ErrValidation)
}

// ParseDate reads a YYYY-MM-DD date in the clock's location. An empty string
// is today.
func (g *Generator) ParseDate(s string) (time.Time, error) {
	now := g.clock.Now()
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "date %q", s), errs.ErrValidation)
	}
	return day, nil
}
