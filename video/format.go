package video

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CreateTimeLayout is the layout of the create_time column
const CreateTimeLayout = "2006/01/02 15:04"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with 1024-based units and one decimal, e.g. "801.0 MB".
// Sizes beyond the largest unit are shown in TB.
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}

// FormatDuration renders seconds as HH:MM:SS, dropping fractions of a second
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "00:00:00"
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatBitrate renders a bits-per-second value in whole kbps, e.g. "4500kbps"
func FormatBitrate(bitsPerSecond int64) string {
	return fmt.Sprintf("%dkbps", bitsPerSecond/1000)
}

// FormatFPS renders a frame rate with two decimals, e.g. "29.97 fps"
func FormatFPS(fps float64) string {
	return fmt.Sprintf("%.2f fps", fps)
}

// FormatSampleRate renders a sample rate in kHz with one decimal, e.g. "48.0 kHz"
func FormatSampleRate(hz int64) string {
	return fmt.Sprintf("%.1f kHz", float64(hz)/1000)
}

// FormatCreateTime renders a timestamp in the local zone for the create_time column
func FormatCreateTime(t time.Time) string {
	return t.Local().Format(CreateTimeLayout)
}

// ResolutionLabel maps a frame size to its common name based on the short side
func ResolutionLabel(width, height int) string {
	short := min(width, height)
	switch {
	case short >= 2160:
		return "2160p"
	case short >= 1080:
		return "1080p"
	case short >= 720:
		return "720p"
	case short >= 540:
		return "540p"
	case short >= 480:
		return "480p"
	}
	return fmt.Sprintf("%dp", short)
}

// ParseFrameRate evaluates an ffprobe rational such as "30000/1001" or "25/1".
// It reports false for missing or degenerate rates like "0/0".
func ParseFrameRate(rate string) (float64, bool) {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return 0, false
	}

	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d := 1.0
	if found {
		if d, err = strconv.ParseFloat(den, 64); err != nil {
			return 0, false
		}
	}
	if d == 0 || n <= 0 {
		return 0, false
	}
	return n / d, true
}
