package riseset

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

const (
	// JustAfterMidnight stands in for a sunrise that does not happen.
	JustAfterMidnight = time.Nanosecond
	// JustBeforeMidnight stands in for a sunset that does not happen.
	JustBeforeMidnight = timetricks.Day - time.Nanosecond
)

var ErrReservedTimes = errors.New("sunrise and sunset both at the midnight markers are reserved for days without a crossing")

// Kind says what sort of day a DayRecord describes.
type Kind int

const (
	Normal Kind = iota
	AllDaylight
	AllNighttime
	// Partial days have a crossing on only one side of the day.
	Partial
	// Split records are half of a day cut at midnight.
	Split
)

var kindNames = [...]string{
	Normal:       "normal",
	AllDaylight:  "all_daylight",
	AllNighttime: "all_nighttime",
	Partial:      "partial",
	Split:        "split",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DayRecord is the sunrise and sunset of one date, as times of day on the
// local clock. Records are values; methods that change a record return a new
// one.
type DayRecord struct {
	date    time.Time
	kind    Kind
	sunrise time.Duration
	sunset  time.Duration
	dst     bool
}

// Classify turns a solver's crossing into a record for date. When
// useDaylightTime and inDaylightSavings are both set, real crossing times
// are moved one hour later. A crossing that fails Validate with one sentinel
// of each sign comes out AllNighttime; use ClassifyChecked to reject it.
func Classify(date time.Time, c Crossing, useDaylightTime, inDaylightSavings bool) DayRecord {
	r := DayRecord{
		date: timetricks.Midnight(date),
		dst:  useDaylightTime && inDaylightSavings,
	}

	var shift time.Duration
	if r.dst {
		shift = time.Hour
	}
	clock := func(hours float64) time.Duration {
		return timetricks.Wrap(timetricks.FromHours(hours) + shift)
	}

	switch {
	case !c.HasRise() && !c.HasSet():
		r.kind = AllNighttime
		if c.Rise > 0 && c.Set > 0 {
			r.kind = AllDaylight
		}
		r.sunrise, r.sunset = JustAfterMidnight, JustBeforeMidnight
	case !c.HasRise():
		r.kind = Partial
		r.sunrise, r.sunset = JustAfterMidnight, clock(c.Set)
	case !c.HasSet():
		r.kind = Partial
		r.sunrise, r.sunset = clock(c.Rise), JustBeforeMidnight
	default:
		r.kind = Normal
		r.sunrise, r.sunset = clock(c.Rise), clock(c.Set)
	}
	return r
}

// ClassifyChecked is Classify for crossings that have not been validated.
func ClassifyChecked(date time.Time, c Crossing, useDaylightTime, inDaylightSavings bool) (DayRecord, error) {
	if err := c.Validate(); err != nil {
		return DayRecord{}, fmt.Errorf("%s: %w", timetricks.UniqueDay(date), err)
	}
	return Classify(date, c, useDaylightTime, inDaylightSavings), nil
}

// NewDayRecord builds a record from clock times. A sentinel on one side
// makes a Split record; sentinels on both sides are rejected, because only
// Classify may produce the all-day and all-night markers.
func NewDayRecord(date time.Time, sunrise, sunset time.Duration, dst bool) (DayRecord, error) {
	return withTimes(DayRecord{date: timetricks.Midnight(date), dst: dst}, sunrise, sunset)
}

func withTimes(r DayRecord, sunrise, sunset time.Duration) (DayRecord, error) {
	if sunrise < 0 || sunrise >= timetricks.Day || sunset < 0 || sunset >= timetricks.Day {
		return DayRecord{}, fmt.Errorf("times %v and %v must be within one day", sunrise, sunset)
	}
	if sunrise == JustAfterMidnight && sunset == JustBeforeMidnight {
		return DayRecord{}, fmt.Errorf("%s: %w", timetricks.UniqueDay(r.date), ErrReservedTimes)
	}
	r.sunrise, r.sunset = sunrise, sunset
	r.kind = Normal
	if sunrise == JustAfterMidnight || sunset == JustBeforeMidnight {
		r.kind = Split
	}
	return r, nil
}

func (r DayRecord) Date() time.Time          { return r.date }
func (r DayRecord) Kind() Kind               { return r.kind }
func (r DayRecord) Sunrise() time.Duration   { return r.sunrise }
func (r DayRecord) Sunset() time.Duration    { return r.sunset }
func (r DayRecord) DaylightSavingTime() bool { return r.dst }

// Daylight is how long the sun is above the horizon on the record's date.
func (r DayRecord) Daylight() time.Duration {
	switch r.kind {
	case AllDaylight:
		return timetricks.Day
	case AllNighttime:
		return 0
	}
	d := r.sunset - r.sunrise
	if d < 0 {
		d += timetricks.Day
	}
	return d.Round(time.Second)
}

// WithDate is the same record placed on another date.
func (r DayRecord) WithDate(date time.Time) DayRecord {
	r.date = timetricks.Midnight(date)
	return r
}

// StandardTime undoes the daylight saving shift, if any.
func (r DayRecord) StandardTime() DayRecord {
	if !r.dst {
		return r
	}
	r.dst = false
	if r.sunrise != JustAfterMidnight {
		r.sunrise = timetricks.Wrap(r.sunrise - time.Hour)
	}
	if r.sunset != JustBeforeMidnight {
		r.sunset = timetricks.Wrap(r.sunset - time.Hour)
	}
	return r
}

// SplitAtMidnight cuts a day whose night falls across midnight into a
// daytime fragment on either side of it. A sunset before 9:00 means the
// night begins after midnight; a sunrise after 15:00 means it began before.
// Other records come back alone.
func (r DayRecord) SplitAtMidnight() []DayRecord {
	if r.kind != Normal && r.kind != Partial {
		return []DayRecord{r}
	}

	var fragments [2][2]time.Duration
	switch {
	case timetricks.Hour(r.sunset) < 9 && r.sunrise != JustAfterMidnight:
		fragments = [2][2]time.Duration{
			{r.sunrise, JustBeforeMidnight},
			{JustAfterMidnight, r.sunset},
		}
	case timetricks.Hour(r.sunrise) > 15 && r.sunset != JustBeforeMidnight:
		fragments = [2][2]time.Duration{
			{JustAfterMidnight, r.sunset},
			{r.sunrise, JustBeforeMidnight},
		}
	default:
		return []DayRecord{r}
	}

	split := make([]DayRecord, 0, 2)
	for _, f := range fragments {
		s, err := withTimes(r, f[0], f[1])
		if err != nil {
			// Unreachable: each fragment keeps one real time.
			return []DayRecord{r}
		}
		split = append(split, s)
	}
	return split
}

// Equal reports whether both records describe the same times on the same
// date.
func (r DayRecord) Equal(o DayRecord) bool {
	return r.date.Equal(o.date) &&
		r.kind == o.kind &&
		r.sunrise == o.sunrise &&
		r.sunset == o.sunset &&
		r.dst == o.dst
}

func (r DayRecord) String() string {
	return fmt.Sprintf("%s %s %s-%s", timetricks.UniqueDay(r.date), r.kind,
		timetricks.Clock(r.sunrise), timetricks.Clock(r.sunset))
}

type dayRecordJSON struct {
	Date    string `json:"date"`
	Kind    Kind   `json:"kind"`
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
	DST     bool   `json:"dst"`
}

func (r DayRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(dayRecordJSON{
		Date:    timetricks.UniqueDay(r.date),
		Kind:    r.kind,
		Sunrise: timetricks.Clock(r.sunrise),
		Sunset:  timetricks.Clock(r.sunset),
		DST:     r.dst,
	})
}
