package video

import (
	"math"
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0.0 B"},
		{512, "512.0 B"},
		{1023, "1023.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{801 * 1024 * 1024, "801.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{-5, "00:00:00"},
		{math.NaN(), "00:00:00"},
		{59.9, "00:00:59"},
		{3723.5, "01:02:03"},
		{36000, "10:00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatBitrate(4500999); got != "4500kbps" {
		t.Errorf("FormatBitrate() = %q", got)
	}
	if got := FormatFPS(30000.0 / 1001.0); got != "29.97 fps" {
		t.Errorf("FormatFPS() = %q", got)
	}
	if got := FormatSampleRate(44100); got != "44.1 kHz" {
		t.Errorf("FormatSampleRate() = %q", got)
	}

	ts := time.Date(2024, 3, 5, 21, 7, 30, 0, time.Local)
	if got := FormatCreateTime(ts); got != "2024/03/05 21:07" {
		t.Errorf("FormatCreateTime() = %q", got)
	}
}

func TestResolutionLabel(t *testing.T) {
	tests := []struct {
		width, height int
		want          string
	}{
		{3840, 2160, "2160p"},
		{1920, 1080, "1080p"},
		{1080, 1920, "1080p"}, // portrait
		{1280, 720, "720p"},
		{960, 540, "540p"},
		{720, 480, "480p"},
		{640, 360, "360p"},
	}

	for _, tt := range tests {
		if got := ResolutionLabel(tt.width, tt.height); got != tt.want {
			t.Errorf("ResolutionLabel(%d, %d) = %q, want %q", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		rate   string
		want   float64
		wantOK bool
	}{
		{"30/1", 30, true},
		{"25", 25, true},
		{"30000/1001", 30000.0 / 1001.0, true},
		{"0/0", 0, false},
		{"30/0", 0, false},
		{"", 0, false},
		{"abc/1", 0, false},
		{"30/x", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseFrameRate(tt.rate)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseFrameRate(%q) = (%v, %v), want (%v, %v)", tt.rate, got, ok, tt.want, tt.wantOK)
		}
	}
}
