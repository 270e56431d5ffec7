package catalog

// The registry is ordered: easy entries first, then medium, then advanced.
// New entries are appended to their tier block; nothing in the execution
// path branches on entry names.
var entries = []Entry{
	// --- easy ---
	{
		Name:    "track-listing",
		Tier:    TierEasy,
		Intent:  "Every track with its artist and album",
		SQL:     `SELECT artist, track, album FROM tracks ORDER BY artist, track`,
		Columns: []string{"artist", "track", "album"},
		Ordered: true,
	},
	{
		Name:    "singles",
		Tier:    TierEasy,
		Intent:  "Tracks released as singles",
		SQL:     `SELECT artist, track FROM tracks WHERE album_type = 'single' ORDER BY artist, track`,
		Columns: []string{"artist", "track"},
		Ordered: true,
	},
	{
		Name:    "licensed-count",
		Tier:    TierEasy,
		Intent:  "Number of licensed tracks",
		SQL:     `SELECT COUNT(*) AS licensed_tracks FROM tracks WHERE licensed = 1`,
		Columns: []string{"licensed_tracks"},
		Ordered: false,
	},
	{
		Name:   "longest-tracks",
		Tier:   TierEasy,
		Intent: "The ten longest tracks by duration",
		SQL: `SELECT artist, track, duration_min FROM tracks
WHERE duration_min IS NOT NULL
ORDER BY duration_min DESC, track
LIMIT 10`,
		Columns: []string{"artist", "track", "duration_min"},
		Ordered: true,
	},
	{
		Name:   "plays-per-platform",
		Tier:   TierEasy,
		Intent: "How many tracks are played most on each platform",
		SQL: `SELECT most_played_on, COUNT(*) AS track_count FROM tracks
WHERE most_played_on IS NOT NULL
GROUP BY most_played_on
ORDER BY track_count DESC, most_played_on`,
		Columns: []string{"most_played_on", "track_count"},
		Ordered: true,
	},

	// --- medium ---
	{
		Name:   "album-danceability",
		Tier:   TierMedium,
		Intent: "Average danceability per album",
		SQL: `SELECT album, AVG(danceability) AS avg_danceability FROM tracks
GROUP BY album
ORDER BY avg_danceability DESC, album`,
		Columns: []string{"album", "avg_danceability"},
		Ordered: true,
	},
	{
		Name:   "artist-total-views",
		Tier:   TierMedium,
		Intent: "Total views accumulated by each artist",
		SQL: `SELECT artist, SUM(views) AS total_views FROM tracks
GROUP BY artist
ORDER BY total_views DESC, artist`,
		Columns: []string{"artist", "total_views"},
		Ordered: true,
	},
	{
		Name:   "top-official-videos",
		Tier:   TierMedium,
		Intent: "The ten most-liked official videos",
		SQL: `SELECT track, likes FROM tracks
WHERE official_video = 1
ORDER BY likes DESC, track
LIMIT 10`,
		Columns: []string{"track", "likes"},
		Ordered: true,
	},
	{
		Name:   "album-energy-range",
		Tier:   TierMedium,
		Intent: "Energy spread (max minus min) within each album",
		SQL: `SELECT album, MAX(energy) - MIN(energy) AS energy_range FROM tracks
GROUP BY album
ORDER BY energy_range DESC, album`,
		Columns: []string{"album", "energy_range"},
		Ordered: true,
	},
	{
		Name:   "above-average-liveness",
		Tier:   TierMedium,
		Intent: "Tracks whose liveness exceeds the overall average",
		SQL: `SELECT artist, track, liveness FROM tracks
WHERE liveness > (SELECT AVG(liveness) FROM tracks)
ORDER BY liveness DESC, track`,
		Columns: []string{"artist", "track", "liveness"},
		Ordered: true,
	},

	// --- advanced ---
	{
		Name:   "top-tracks-per-artist",
		Tier:   TierAdvanced,
		Intent: "The three most-viewed tracks of every artist",
		SQL: `WITH ranked AS (
  SELECT artist, track, views,
         ROW_NUMBER() OVER (PARTITION BY artist ORDER BY views DESC, track) AS rn
  FROM tracks
)
SELECT artist, track, views FROM ranked
WHERE rn <= 3
ORDER BY artist, rn`,
		Columns: []string{"artist", "track", "views"},
		Ordered: true,
	},
	{
		Name:   "energy-liveness-ratio",
		Tier:   TierAdvanced,
		Intent: "Tracks where energy is more than 1.2 times the liveness",
		// Rows with liveness NULL or zero are excluded rather than
		// faulting on division by zero.
		SQL: `SELECT artist, track, energy * 1.0 / liveness AS energy_ratio FROM tracks
WHERE liveness IS NOT NULL AND liveness <> 0
  AND energy * 1.0 / liveness > 1.2
ORDER BY energy_ratio DESC, track`,
		Columns: []string{"artist", "track", "energy_ratio"},
		Ordered: true,
	},
	{
		Name:   "cumulative-likes",
		Tier:   TierAdvanced,
		Intent: "Running total of likes over tracks ordered by views",
		SQL: `SELECT track, views,
       SUM(likes) OVER (ORDER BY views ASC, track
                        ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) AS cumulative_likes
FROM tracks
ORDER BY views ASC, track`,
		Columns: []string{"track", "views", "cumulative_likes"},
		Ordered: true,
	},
	{
		Name:   "track-view-share",
		Tier:   TierAdvanced,
		Intent: "Each track's share of its artist's total views",
		SQL: `WITH artist_totals AS (
  SELECT artist, SUM(views) AS total_views FROM tracks GROUP BY artist
)
SELECT t.artist, t.track, t.views * 100.0 / a.total_views AS view_share_pct
FROM tracks t
JOIN artist_totals a ON a.artist = t.artist
WHERE a.total_views > 0
ORDER BY view_share_pct DESC, t.track`,
		Columns: []string{"artist", "track", "view_share_pct"},
		Ordered: true,
	},
	{
		Name:   "viral-tracks",
		Tier:   TierAdvanced,
		Intent: "Tracks above both the average views and the average likes",
		SQL: `WITH stats AS (
  SELECT AVG(views) AS avg_views, AVG(likes) AS avg_likes FROM tracks
)
SELECT artist, track, views, likes
FROM tracks, stats
WHERE views > avg_views AND likes > avg_likes
ORDER BY views DESC, track`,
		Columns: []string{"artist", "track", "views", "likes"},
		Ordered: true,
	},
}
