package habit

// CurrentStreak counts the consecutive run of completed days ending at today
// or, under the one-day grace rule, at yesterday. A habit not completed
// today or yesterday has no active streak; a streak only resets once a full
// day has been skipped entirely.
func CurrentStreak(completed map[Date]bool, today Date) int {
	start := today
	if !completed[start] {
		start = today.AddDays(-1)
		if !completed[start] {
			return 0
		}
	}

	n := 0
	for d := start; completed[d]; d = d.AddDays(-1) {
		n++
	}
	return n
}

// TotalCompletions is the number of distinct days ever logged.
func TotalCompletions(completed map[Date]bool) int {
	return len(completed)
}

// Streak computes the current streak for a habit as of today.
func (l *Log) Streak(habitID string, today Date) int {
	return CurrentStreak(l.Completed(habitID), today)
}

// TotalCompletions counts the distinct days logged for a habit.
func (l *Log) TotalCompletions(habitID string) int {
	return len(l.entries[habitID])
}
