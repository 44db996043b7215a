package riseset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/daylightchart/pkg/timetricks"
)

var testDate = timetricks.Date(2024, time.June, 21)

func hms(h, m, s int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

func TestClassify(t *testing.T) {
	table := []struct {
		name     string
		crossing Crossing
		dst      bool
		kind     Kind
		rise     time.Duration
		set      time.Duration
	}{{
		name:     "normal",
		crossing: Crossing{8.092908588501531, 16.02065555798682},
		kind:     Normal,
		rise:     hms(8, 5, 34),
		set:      hms(16, 1, 14),
	}, {
		name:     "normal in summer time",
		crossing: Crossing{8.092908588501531, 16.02065555798682},
		dst:      true,
		kind:     Normal,
		rise:     hms(9, 5, 34),
		set:      hms(17, 1, 14),
	}, {
		name:     "summer time past midnight",
		crossing: Crossing{3.5, 23.5},
		dst:      true,
		kind:     Normal,
		rise:     hms(4, 30, 0),
		set:      hms(0, 30, 0),
	}, {
		name:     "all daylight",
		crossing: Crossing{AboveHorizon, AboveHorizon},
		dst:      true,
		kind:     AllDaylight,
		rise:     JustAfterMidnight,
		set:      JustBeforeMidnight,
	}, {
		name:     "all nighttime",
		crossing: Crossing{BelowHorizon, BelowHorizon},
		kind:     AllNighttime,
		rise:     JustAfterMidnight,
		set:      JustBeforeMidnight,
	}, {
		name:     "no sunrise",
		crossing: Crossing{AboveHorizon, 23.01503784146806},
		kind:     Partial,
		rise:     JustAfterMidnight,
		set:      hms(23, 0, 54),
	}, {
		name:     "no sunset",
		crossing: Crossing{1.0780718660640942, BelowHorizon},
		dst:      true,
		kind:     Partial,
		rise:     hms(2, 4, 41),
		set:      JustBeforeMidnight,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			r := Classify(testDate, tc.crossing, true, tc.dst)
			if r.Kind() != tc.kind {
				t.Errorf("got kind %v, wanted %v", r.Kind(), tc.kind)
			}
			if r.Sunrise() != tc.rise || r.Sunset() != tc.set {
				t.Errorf("got %v-%v, wanted %v-%v", r.Sunrise(), r.Sunset(), tc.rise, tc.set)
			}
			if r.DaylightSavingTime() != tc.dst {
				t.Errorf("got dst %v, wanted %v", r.DaylightSavingTime(), tc.dst)
			}
			if !r.Date().Equal(testDate) {
				t.Errorf("got date %v", r.Date())
			}
		})
	}
}

func TestClassifyChecked(t *testing.T) {
	table := []struct {
		name     string
		crossing Crossing
		wantErr  bool
	}{
		{"normal", Crossing{6, 18}, false},
		{"all daylight", Crossing{AboveHorizon, AboveHorizon}, false},
		{"all nighttime", Crossing{BelowHorizon, BelowHorizon}, false},
		{"one side", Crossing{AboveHorizon, 20}, false},
		{"above then below", Crossing{AboveHorizon, BelowHorizon}, true},
		{"below then above", Crossing{BelowHorizon, AboveHorizon}, true},
		{"not a number", Crossing{math.NaN(), 18}, true},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ClassifyChecked(testDate, tc.crossing, false, false)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCrossing) {
					t.Errorf("got %v, wanted %v", err, ErrInvalidCrossing)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			if want := Classify(testDate, tc.crossing, false, false); r != want {
				t.Errorf("got %v, wanted %v", r, want)
			}
		})
	}

	// Unchecked, a mixed crossing falls back to a night.
	if r := Classify(testDate, Crossing{AboveHorizon, BelowHorizon}, false, false); r.Kind() != AllNighttime {
		t.Errorf("got kind %v, wanted %v", r.Kind(), AllNighttime)
	}
}

func TestClassifyIgnoresDSTWhenUnused(t *testing.T) {
	r := Classify(testDate, Crossing{6, 18}, false, true)
	if r.DaylightSavingTime() || r.Sunrise() != 6*time.Hour {
		t.Errorf("got %v, wanted no shift", r)
	}
}

func TestStandardTime(t *testing.T) {
	crossings := []Crossing{
		{8.092908588501531, 16.02065555798682},
		{3.7, 23.6},
		{23.9999, 0.0001},
		{AboveHorizon, 23.01503784146806},
		{1.0780718660640942, BelowHorizon},
		{AboveHorizon, AboveHorizon},
		{BelowHorizon, BelowHorizon},
	}
	for _, c := range crossings {
		t.Run(fmt.Sprintf("%v", c), func(t *testing.T) {
			want := Classify(testDate, c, false, true)
			shifted := Classify(testDate, c, true, true)
			if diff := cmp.Diff(want, shifted.StandardTime()); diff != "" {
				t.Errorf("StandardTime() (-want,+got): %s", diff)
			}
			if want.StandardTime() != want {
				t.Errorf("standard time records should be unchanged")
			}
		})
	}
}

func TestNewDayRecord(t *testing.T) {
	table := []struct {
		name     string
		rise     time.Duration
		set      time.Duration
		wantKind Kind
		wantErr  error
	}{
		{"ordinary", 6 * time.Hour, 18 * time.Hour, Normal, nil},
		{"evening fragment", 20 * time.Hour, JustBeforeMidnight, Split, nil},
		{"morning fragment", JustAfterMidnight, time.Hour, Split, nil},
		{"reserved", JustAfterMidnight, JustBeforeMidnight, 0, ErrReservedTimes},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewDayRecord(testDate, tc.rise, tc.set, false)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v, wanted %v", err, tc.wantErr)
			}
			if err == nil && r.Kind() != tc.wantKind {
				t.Errorf("got kind %v, wanted %v", r.Kind(), tc.wantKind)
			}
		})
	}

	if _, err := NewDayRecord(testDate, -time.Second, time.Hour, false); err == nil {
		t.Errorf("negative times should be rejected")
	}
	if _, err := NewDayRecord(testDate, time.Hour, timetricks.Day, false); err == nil {
		t.Errorf("times past midnight should be rejected")
	}
}

func TestSplitAtMidnight(t *testing.T) {
	mustRecord := func(rise, set time.Duration) DayRecord {
		r, err := NewDayRecord(testDate, rise, set, true)
		if err != nil {
			t.Fatalf("bad record: %v", err)
		}
		return r
	}

	table := []struct {
		name   string
		record DayRecord
		want   [][2]time.Duration
	}{{
		name:   "ordinary day",
		record: mustRecord(hms(6, 0, 0), hms(18, 0, 0)),
		want:   [][2]time.Duration{{hms(6, 0, 0), hms(18, 0, 0)}},
	}, {
		name:   "sets after midnight",
		record: mustRecord(hms(2, 12, 11), hms(0, 10, 27)),
		want: [][2]time.Duration{
			{hms(2, 12, 11), JustBeforeMidnight},
			{JustAfterMidnight, hms(0, 10, 27)},
		},
	}, {
		name:   "rises before midnight",
		record: mustRecord(hms(23, 30, 0), hms(22, 0, 0)),
		want: [][2]time.Duration{
			{JustAfterMidnight, hms(22, 0, 0)},
			{hms(23, 30, 0), JustBeforeMidnight},
		},
	}, {
		name:   "partial without sunrise",
		record: Classify(testDate, Crossing{AboveHorizon, 5}, false, false),
		want:   [][2]time.Duration{{JustAfterMidnight, hms(5, 0, 0)}},
	}, {
		name:   "partial without sunset",
		record: Classify(testDate, Crossing{16, BelowHorizon}, false, false),
		want:   [][2]time.Duration{{hms(16, 0, 0), JustBeforeMidnight}},
	}, {
		name:   "all daylight",
		record: Classify(testDate, Crossing{AboveHorizon, AboveHorizon}, false, false),
		want:   [][2]time.Duration{{JustAfterMidnight, JustBeforeMidnight}},
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			var got [][2]time.Duration
			for _, f := range tc.record.SplitAtMidnight() {
				got = append(got, [2]time.Duration{f.Sunrise(), f.Sunset()})
				if !f.Date().Equal(tc.record.Date()) || f.DaylightSavingTime() != tc.record.DaylightSavingTime() {
					t.Errorf("fragment %v lost the record's date or dst flag", f)
				}
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SplitAtMidnight() (-want,+got): %s", diff)
			}
		})
	}
}

func TestSplitIsReversible(t *testing.T) {
	for _, c := range []Crossing{{2.2, 0.17}, {22.5, 21}, {15.5, 8.9}} {
		r := Classify(testDate, c, true, true)
		fragments := r.SplitAtMidnight()
		if len(fragments) != 2 {
			t.Fatalf("%v: expected a split", r)
		}
		var rise, set time.Duration
		for _, f := range fragments {
			if f.Kind() != Split {
				t.Errorf("fragment kind %v", f.Kind())
			}
			if f.Sunrise() != JustAfterMidnight {
				rise = f.Sunrise()
			}
			if f.Sunset() != JustBeforeMidnight {
				set = f.Sunset()
			}
		}
		if rise != r.Sunrise() || set != r.Sunset() {
			t.Errorf("fragments %v do not rebuild %v", fragments, r)
		}
	}
}

func TestDaylight(t *testing.T) {
	table := []struct {
		record DayRecord
		want   time.Duration
	}{
		{Classify(testDate, Crossing{6, 18}, false, false), 12 * time.Hour},
		{Classify(testDate, Crossing{2, 0.5}, false, false), 22*time.Hour + 30*time.Minute},
		{Classify(testDate, Crossing{AboveHorizon, AboveHorizon}, false, false), timetricks.Day},
		{Classify(testDate, Crossing{BelowHorizon, BelowHorizon}, false, false), 0},
	}
	for _, tc := range table {
		if got := tc.record.Daylight(); got != tc.want {
			t.Errorf("%v: got %v, wanted %v", tc.record, got, tc.want)
		}
	}
}

func ExampleDayRecord_MarshalJSON() {
	r := Classify(timetricks.Date(2024, time.January, 1), Crossing{8.092908588501531, 16.02065555798682}, true, false)
	b, _ := json.Marshal(r)
	fmt.Println(string(b))
	// Output:
	// {"date":"2024-01-01","kind":"normal","sunrise":"08:05:34","sunset":"16:01:14","dst":false}
}

func ExampleDayRecord_WithDate() {
	r := Classify(timetricks.Date(2024, time.June, 21), Crossing{AboveHorizon, AboveHorizon}, false, false)
	fmt.Println(r)
	fmt.Println(r.WithDate(timetricks.Date(2024, time.June, 22)))
	// Output:
	// 2024-06-21 all_daylight 00:00:00-23:59:59
	// 2024-06-22 all_daylight 00:00:00-23:59:59
}
