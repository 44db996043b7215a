// Package bands groups a year of sunrise and sunset records into ribbons
// that can each be drawn as one polygon on a chart whose vertical axis is
// the time of day.
package bands

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spencer-p/daylightchart/pkg/riseset"
)

// Type says which family of records a band was built from.
type Type int

const (
	// WithClockShift bands follow the clock, daylight saving time included.
	WithClockShift Type = iota
	// WithoutClockShift bands are in standard time all year.
	WithoutClockShift
	// Twilight bands are drawn from a twilight horizon.
	Twilight
)

func (t Type) String() string {
	switch t {
	case WithClockShift:
		return "With clock shift"
	case WithoutClockShift:
		return "Without clock shift"
	case Twilight:
		return "Twilight"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Band is a run of records, at most one per date, kept in date order.
type Band struct {
	Type Type
	// Number counts the bands of one Segment call from zero.
	Number int

	records []riseset.DayRecord
}

func (b Band) Name() string {
	return fmt.Sprintf("%s, #%d", b.Type, b.Number)
}

func (b Band) Len() int { return len(b.records) }

// Records returns the band's records in date order.
func (b Band) Records() []riseset.DayRecord {
	return append([]riseset.DayRecord(nil), b.records...)
}

// Dates lists the dates the band covers.
func (b Band) Dates() []time.Time {
	dates := make([]time.Time, len(b.records))
	for i, r := range b.records {
		dates[i] = r.Date()
	}
	return dates
}

func (b Band) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string              `json:"name"`
		Type   Type                `json:"type"`
		Number int                 `json:"number"`
		Days   []riseset.DayRecord `json:"days"`
	}{b.Name(), b.Type, b.Number, b.records})
}

// add keeps r if it has daylight to draw. A record for a date already in
// the band replaces the old one.
func (b *Band) add(r riseset.DayRecord) {
	if r.Kind() == riseset.AllNighttime || r.Sunrise() >= r.Sunset() {
		return
	}
	i := sort.Search(len(b.records), func(i int) bool {
		return !b.records[i].Date().Before(r.Date())
	})
	if i < len(b.records) && b.records[i].Date().Equal(r.Date()) {
		b.records[i] = r
		return
	}
	b.records = append(b.records, riseset.DayRecord{})
	copy(b.records[i+1:], b.records[i:])
	b.records[i] = r
}

func (b Band) last() (riseset.DayRecord, bool) {
	if len(b.records) == 0 {
		return riseset.DayRecord{}, false
	}
	return b.records[len(b.records)-1], true
}

// Segment scans records in date order and splits them into bands.
//
// Days whose night crosses midnight are cut in two; the part before
// midnight stays in the base band and the part after it goes to a wrap
// band that lives only as long as the cutting does. Where a wrap band meets
// a run of all-daylight days, its fragment is copied onto the neighbouring
// all-daylight date so the two ribbons touch. All-nighttime days close the
// base band.
//
// Bands are returned in the order they were opened.
func Segment(records []riseset.DayRecord, t Type) []Band {
	var (
		bands      []*Band
		base, wrap *Band
	)
	open := func() *Band {
		b := &Band{Type: t, Number: len(bands)}
		bands = append(bands, b)
		return b
	}

	for i, r := range records {
		fragments := r.SplitAtMidnight()

		if len(fragments) == 2 {
			if wrap == nil {
				wrap = open()
			}
			if base == nil {
				base = open()
			}
			base.add(fragments[0])
			wrap.add(fragments[1])
			if i > 0 && records[i-1].Kind() == riseset.AllDaylight {
				wrap.add(fragments[1].WithDate(records[i-1].Date()))
			}
			continue
		}

		if wrap != nil {
			if i+1 < len(records) && records[i+1].Kind() == riseset.AllDaylight {
				if last, ok := wrap.last(); ok {
					wrap.add(last.WithDate(records[i+1].Date()))
				}
			}
			wrap = nil
		}

		switch {
		case base == nil && r.Kind() != riseset.AllNighttime:
			base = open()
		case base != nil && r.Kind() == riseset.AllNighttime:
			base = nil
		}
		if base != nil {
			base.add(r)
		}
	}

	out := make([]Band, len(bands))
	for i, b := range bands {
		out[i] = *b
	}
	return out
}
