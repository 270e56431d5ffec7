package load

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/franz/trackbench/internal/store"
	"github.com/franz/trackbench/internal/util"
)

// audioExtensions are the file types the tag importer will try to read
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
	".opus": true,
}

// ImportTags walks a directory of audio files and inserts one tracks row
// per readable file, filling the artist/track/album identity columns from
// the embedded tags. Audio-feature and platform columns stay NULL, which
// the schema and every catalog query tolerate. Unreadable files are
// skipped and counted.
func ImportTags(ctx context.Context, st *store.Store, dir string) (*Result, error) {
	bar := newProgressBar("Importing")
	start := time.Now()
	result := &Result{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		t, ok := readIdentity(path)
		if !ok {
			util.DebugLog("skipping %s: no readable tags", path)
			result.RowsSkipped++
			return nil
		}

		if err := st.InsertTrack(ctx, t); err != nil {
			return err
		}
		result.RowsLoaded++
		if bar != nil {
			bar.Add(1)
		}
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// readIdentity extracts artist/track/album from a file's tags
func readIdentity(path string) (*store.Track, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, false
	}

	title := m.Title()
	if title == "" {
		// Fall back to the filename stem so the row is still usable
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	t := &store.Track{
		TrackName: sql.NullString{String: title, Valid: true},
	}
	if artist := m.Artist(); artist != "" {
		t.Artist = sql.NullString{String: artist, Valid: true}
	}
	if album := m.Album(); album != "" {
		t.Album = sql.NullString{String: album, Valid: true}
		t.AlbumType = sql.NullString{String: "album", Valid: true}
	}
	return t, true
}
