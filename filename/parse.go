// Package filename extracts catalogue fields from dotted video filenames of the form
//
//	<collection>.<yy.mm.dd>.<cast>.<episode>.<comment>
//
// Parsing never fails: anything that does not follow the convention comes back as
// unknown values.
package filename

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lepinkainen/videocatalog/types"
	"github.com/lepinkainen/videocatalog/video"
)

// dateLayout is the two-digit year, month, day layout used in filenames
const dateLayout = "06.01.02"

// episodeRegex matches episode codes such as 001, E12 or EP3
var episodeRegex = regexp.MustCompile(`(?i)^(?:ep?)?\d{1,4}$`)

// Fields contains the values parsed from a filename
type Fields struct {
	Collection types.Value
	Date       types.Value // ISO formatted, e.g. 2024-03-05
	Cast       types.Value
	Episode    types.Value
	Comment    types.Value
}

// Parse extracts the catalogue fields from a file name.
// One trailing video extension is removed, so pass the full name rather than a
// stem: in "Site.24.03.05.Jane.001.Mov" the last segment would be taken as the
// extension.
func Parse(name string) Fields {
	segments := split(stripVideoExt(name))

	idx, date, ok := findDate(segments)
	// the convention needs at least one segment after the date
	if !ok || idx+3 >= len(segments) {
		return Fields{}
	}

	fields := Fields{
		Collection: types.Known(strings.Join(segments[:idx], " ")),
		Date:       types.Known(date.Format("2006-01-02")),
	}

	rest := truncateAtMarker(segments[idx+3:])
	if len(rest) == 0 {
		return fields
	}

	if k := episodeIndex(rest); k > 0 {
		fields.Cast = types.Known(joinCast(rest[:k]))
		fields.Episode = types.Known(rest[k])
		if k+1 < len(rest) {
			fields.Comment = types.Known(strings.Join(rest[k+1:], " "))
		}
		return fields
	}

	fields.Cast = types.Known(guessCast(rest))
	return fields
}

func stripVideoExt(name string) string {
	name = filepath.Base(name)
	if video.IsVideoFile(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// split breaks a name into its dot or space separated segments, dropping empty ones
func split(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == ' '
	})
}

// findDate locates the first yy.mm.dd triple that has at least one segment before it
func findDate(segments []string) (int, time.Time, bool) {
	for i := 1; i+2 < len(segments); i++ {
		if !isTwoDigits(segments[i]) || !isTwoDigits(segments[i+1]) || !isTwoDigits(segments[i+2]) {
			continue
		}
		date, err := time.Parse(dateLayout, strings.Join(segments[i:i+3], "."))
		if err != nil {
			continue
		}
		return i, date, true
	}
	return 0, time.Time{}, false
}

func isTwoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// truncateAtMarker drops everything from an XXX segment onwards
func truncateAtMarker(segments []string) []string {
	for i, s := range segments {
		if strings.EqualFold(s, "XXX") {
			return segments[:i]
		}
	}
	return segments
}

func episodeIndex(segments []string) int {
	for i := 1; i < len(segments); i++ {
		if episodeRegex.MatchString(segments[i]) {
			return i
		}
	}
	return -1
}

func andIndex(segments []string) int {
	for i, s := range segments {
		if s == "And" {
			return i
		}
	}
	return -1
}

// joinCast renders cast segments, turning "Jane Doe And Mary Sue" into "Jane Doe, Mary Sue"
func joinCast(segments []string) string {
	if j := andIndex(segments); j > 0 && j < len(segments)-1 {
		return strings.Join(segments[:j], " ") + ", " + strings.Join(segments[j+1:], " ")
	}
	return strings.Join(segments, " ")
}

// guessCast picks the performer names when no episode code marks where they end.
// Up to three segments are taken whole, as written. Longer runs keep two names
// around an early "And", or otherwise the first two segments.
func guessCast(segments []string) string {
	if len(segments) <= 3 {
		return strings.Join(segments, " ")
	}

	j := andIndex(segments)
	if j < 1 || j >= 3 {
		return strings.Join(segments[:2], " ")
	}

	end := min(j+3, len(segments))
	return joinCast(segments[:end])
}
