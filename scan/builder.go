package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/videocatalog/catalog"
	"github.com/lepinkainen/videocatalog/filename"
	"github.com/lepinkainen/videocatalog/video"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of one unit of work
type Result struct {
	Path     string
	Record   catalog.Record
	ProbeErr error // probing failed; the record carries Unknown technical fields
	Err      error // the file could not be recorded at all
}

// Builder turns one video file into a catalogue record
type Builder struct {
	Prober video.Prober
	Tag    string
	Log    logrus.FieldLogger
}

// Build stats, probes and parses the file at path.
//
// A file that cannot be stat'ed is reported in Result.Err and left out of the
// catalogue. A failed probe is logged and only blanks the technical fields.
func (b *Builder) Build(ctx context.Context, path string) Result {
	log := b.Log.WithField("path", path)

	fi, err := os.Stat(path)
	if err != nil {
		log.WithError(err).Error("Cannot read file")
		return Result{Path: path, Err: fmt.Errorf("failed to stat file: %w", err)}
	}

	name := video.Stem(path)
	fields := filename.Parse(filepath.Base(path))

	result := Result{Path: path}
	meta, err := b.Prober.Probe(ctx, path)
	if err != nil {
		log.WithError(err).Warn("Could not extract metadata")
		result.ProbeErr = err
		meta = video.UnknownMetadata()
	}

	result.Record = catalog.Record{
		Name:              name,
		Size:              video.FormatSize(fi.Size()),
		Duration:          meta.Duration.String(),
		Collection:        fields.Collection.String(),
		Cast:              fields.Cast.String(),
		Tags:              buildTags(b.Tag, name, meta),
		Path:              path,
		Bitrate:           meta.Bitrate.String(),
		CreateTime:        video.FormatCreateTime(fi.ModTime()),
		FPS:               meta.FPS.String(),
		Resolution:        meta.Resolution.String(),
		AudioBitrate:      meta.AudioBitrate.String(),
		AudioChannels:     meta.AudioChannels.String(),
		AudioSamplingRate: meta.AudioSampleRate.String(),
		Comment:           fields.Comment.Or(meta.Comment).String(),
	}
	return result
}

// buildTags joins the user tag, the resolution label and the source marker.
// The user tag is always first, even when empty.
func buildTags(tag, name string, meta *video.Metadata) string {
	parts := []string{strings.TrimSpace(tag)}
	if label, ok := meta.ResolutionLabel.Get(); ok {
		parts = append(parts, label)
	}
	parts = append(parts, sourceMarker(name))
	return strings.Join(parts, ", ")
}

// sourceMarker tags PRT releases, everything else is XC
func sourceMarker(name string) string {
	if strings.Contains(strings.ToUpper(name), "PRT") {
		return "PRT"
	}
	return "XC"
}
