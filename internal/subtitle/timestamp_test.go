package subtitle

import (
	"testing"
	"time"
)

func TestFormatTimestamps(t *testing.T) {
	d := time.Hour + 2*time.Minute + 3*time.Second + 456*time.Millisecond

	if got := formatTimestamp(d, ","); got != "01:02:03,456" {
		t.Errorf("SRT timestamp = %q", got)
	}
	if got := formatTimestamp(d, "."); got != "01:02:03.456" {
		t.Errorf("VTT timestamp = %q", got)
	}
	if got := formatASSTimestamp(d); got != "1:02:03.45" {
		t.Errorf("ASS timestamp = %q", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		fields  [4]string
		want    time.Duration
		wantErr bool
	}{
		{"no hours", [4]string{"", "01", "02", "003"}, time.Minute + 2*time.Second + 3*time.Millisecond, false},
		{"long hours", [4]string{"120", "00", "00", "000"}, 120 * time.Hour, false},
		{"minutes overflow", [4]string{"00", "60", "00", "000"}, 0, true},
		{"seconds overflow", [4]string{"00", "00", "61", "000"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.fields[0], tt.fields[1], tt.fields[2], tt.fields[3])
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimestamp error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTimestamp = %v, want %v", got, tt.want)
			}
		})
	}
}
