package store

// The tracks table mirrors the layout of the bulk-load dataset one row per
// track/video pairing. There is deliberately no primary key and no NOT NULL
// constraint: the dataset repeats artist/album values freely and any field
// may be missing, so queries must tolerate duplicates and NULLs.
const schemaTracks = `
CREATE TABLE tracks (
  artist            TEXT,
  track             TEXT,
  album             TEXT,
  album_type        TEXT,
  danceability      REAL,
  energy            REAL,
  loudness          REAL,
  speechiness       REAL,
  acousticness      REAL,
  instrumentalness  REAL,
  liveness          REAL,
  valence           REAL,
  tempo             REAL,
  duration_min      REAL,
  views             REAL,
  likes             REAL,
  comments          REAL,
  stream            REAL,
  licensed          INTEGER,
  official_video    INTEGER,
  energy_liveness   REAL,
  most_played_on    TEXT
)`

// TrackColumns is the declared column order of the tracks table. Bulk-load
// sources must match it; it is the on-the-wire contract with the engine.
var TrackColumns = []string{
	"artist", "track", "album", "album_type",
	"danceability", "energy", "loudness", "speechiness",
	"acousticness", "instrumentalness", "liveness", "valence",
	"tempo", "duration_min",
	"views", "likes", "comments", "stream",
	"licensed", "official_video",
	"energy_liveness", "most_played_on",
}
