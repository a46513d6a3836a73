package daily

import "time"

const dateLayout = "2006-01-02"

// DateOf returns the local calendar date of t as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// NeedsReset reports whether the day counters belong to another calendar day.
func NeedsReset(lastDate, today string) bool {
	return lastDate != today
}

// DetectRollover returns the entry to archive when the tracked day has ended.
// No entry is produced when the dates match, when there is no previous date
// to file the entry under, or when the day saw no activity.
func DetectRollover(lastDate, today string, day Day) (LogEntry, bool) {
	if !NeedsReset(lastDate, today) || lastDate == "" || !day.HasActivity() {
		return LogEntry{}, false
	}
	return archive(lastDate, day), true
}

func archive(date string, day Day) LogEntry {
	return LogEntry{
		Date:             date,
		Steps:            day.Steps,
		CaloriesBurned:   day.CaloriesBurned,
		CaloriesConsumed: day.CaloriesConsumed(),
	}
}

// appendEntry adds e to history keeping one entry per date. An entry for a
// date already archived (only reachable after a manual reset) is summed
// into a fresh entry that takes the old one's place.
func appendEntry(history []LogEntry, e LogEntry) []LogEntry {
	out := make([]LogEntry, 0, len(history)+1)
	merged := false
	for _, h := range history {
		if h.Date == e.Date {
			out = append(out, LogEntry{
				Date:             h.Date,
				Steps:            h.Steps + e.Steps,
				CaloriesBurned:   h.CaloriesBurned + e.CaloriesBurned,
				CaloriesConsumed: h.CaloriesConsumed + e.CaloriesConsumed,
			})
			merged = true
			continue
		}
		out = append(out, h)
	}
	if !merged {
		out = append(out, e)
	}
	return out
}
