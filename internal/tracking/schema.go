package tracking

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	timestamp DATETIME DEFAULT (datetime('now')),
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	in_width INTEGER NOT NULL,
	in_height INTEGER NOT NULL,
	out_width INTEGER NOT NULL,
	out_height INTEGER NOT NULL,
	frames INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	status TEXT NOT NULL
);
`

const cleanupSQL = `DELETE FROM runs WHERE timestamp < datetime('now', '-90 days');`

const insertSQL = `
INSERT INTO runs (run_id, input, output, in_width, in_height, out_width, out_height, frames, duration_ms, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const summarySQL = `
SELECT
	COUNT(*) as total_runs,
	COALESCE(SUM(CASE WHEN status = 'ok' THEN 1 ELSE 0 END), 0) as ok_runs,
	COALESCE(SUM(frames), 0) as total_frames,
	COALESCE(SUM(duration_ms), 0) as total_time_ms
FROM runs;
`

const recentSQL = `
SELECT run_id, input, output, in_width, in_height, out_width, out_height, frames, duration_ms, status, timestamp
FROM runs
ORDER BY id DESC
LIMIT ?;
`
