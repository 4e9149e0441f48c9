package transcriber

import (
	"strconv"
	"strings"
)

// ParseSRT flattens SRT subtitle content into plain transcript text and
// returns the duration in minutes taken from the last cue's end timestamp.
func ParseSRT(srt string) (string, float64) {
	var lines []string
	var lastEnd float64

	for _, line := range strings.Split(srt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := strconv.Atoi(line); err == nil {
			continue // cue index
		}
		if strings.Contains(line, "-->") {
			parts := strings.Split(line, "-->")
			if len(parts) == 2 {
				if sec, ok := parseTimestamp(strings.TrimSpace(parts[1])); ok && sec > lastEnd {
					lastEnd = sec
				}
			}
			continue
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, " "), lastEnd / 60
}

// parseTimestamp reads an SRT timestamp (HH:MM:SS,mmm) into seconds.
func parseTimestamp(ts string) (float64, bool) {
	ts = strings.ReplaceAll(ts, ",", ".")
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(h)*3600 + float64(m)*60 + s, true
}
