package dateutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "valid date", in: "2025-10-01", wantErr: false},
		{name: "invalid month", in: "2025-13-01", wantErr: true},
		{name: "wrong format", in: "01/10/2025", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "with seconds", in: "2025-10-09T09:00:00", wantErr: false},
		{name: "without seconds", in: "2025-10-09T09:00", wantErr: false},
		{name: "space separator", in: "2025-10-09 09:00", wantErr: false},
		{name: "garbage", in: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateTime(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "nine am", in: "09:00", want: 540},
		{name: "eleven pm", in: "23:00", want: 1380},
		{name: "invalid", in: "9am", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToMinutes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TimeToMinutes(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAtClockAndClockMinutes(t *testing.T) {
	day := time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)
	clock := AtClock(day, 9*60+30)
	if clock.Hour() != 9 || clock.Minute() != 30 {
		t.Fatalf("AtClock produced %v, want 09:30", clock)
	}
	if got := ClockMinutes(clock); got != 9*60+30 {
		t.Errorf("ClockMinutes() = %d, want %d", got, 9*60+30)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 10, 9, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 10, 9, 20, 0, 0, 0, time.UTC)
	c := time.Date(2025, 10, 10, 8, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same calendar day")
	}
	if SameDay(a, c) {
		t.Error("expected different calendar days")
	}
}

func TestDayRange(t *testing.T) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

	var days []string
	DayRange(start, end, func(d time.Time) {
		days = append(days, DateKey(d))
	})

	want := []string{"2025-10-01", "2025-10-02", "2025-10-03"}
	if len(days) != len(want) {
		t.Fatalf("got %d days, want %d", len(days), len(want))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, days[i], want[i])
		}
	}
}
