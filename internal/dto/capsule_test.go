package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *time.Time
		wantErr bool
	}{
		{
			"date only becomes start of day UTC",
			`"2027-05-04"`,
			ptrTime(time.Date(2027, 5, 4, 0, 0, 0, 0, time.UTC)),
			false,
		},
		{
			"rfc3339 kept as is",
			`"2027-05-04T10:30:00Z"`,
			ptrTime(time.Date(2027, 5, 4, 10, 30, 0, 0, time.UTC)),
			false,
		},
		{"null is absent", `null`, nil, false},
		{"empty string is absent", `""`, nil, false},
		{"garbage rejected", `"05/04/2027"`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.in), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := d.Ptr()
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Ptr() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("Ptr() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
