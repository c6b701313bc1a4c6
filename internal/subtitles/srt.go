// Package subtitles parses SubRip (.srt) subtitle files into timed cues
package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Cue is one parsed subtitle entry with millisecond timestamps
type Cue struct {
	Index   int
	StartMS int
	EndMS   int
	Text    string
}

// Parse reads an SRT document and returns its cues in file order.
// Cue numbering from the file is ignored; indexes are reassigned sequentially.
// Malformed blocks (missing timecode, start after end) produce an error.
func Parse(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var cues []Cue
	var textLines []string
	var startMS, endMS int
	inCue := false
	lineNo := 0

	flush := func() {
		if inCue && len(textLines) > 0 {
			cues = append(cues, Cue{
				Index:   len(cues),
				StartMS: startMS,
				EndMS:   endMS,
				Text:    strings.Join(textLines, "\n"),
			})
		}
		textLines = nil
		inCue = false
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			// Strip UTF-8 BOM if present
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)

		// Blank line terminates the current cue
		if trimmed == "" {
			flush()
			continue
		}

		if strings.Contains(trimmed, "-->") {
			flush()
			start, end, err := parseTimeRange(trimmed)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			startMS, endMS = start, end
			inCue = true
			continue
		}

		if !inCue {
			// Sequence number line before the timecode; ignore it
			if _, err := strconv.Atoi(trimmed); err == nil {
				continue
			}
			return nil, fmt.Errorf("line %d: unexpected text outside cue: %q", lineNo, trimmed)
		}

		textLines = append(textLines, trimmed)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return cues, nil
}

// parseTimeRange parses a "00:00:01,000 --> 00:00:04,000" line
func parseTimeRange(line string) (int, int, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timecode line: %q", line)
	}

	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}

	// Position hints like "X1:40" may follow the end timestamp
	endField := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp: %q", line)
	}
	end, err := parseTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}

	if start > end {
		return 0, 0, fmt.Errorf("cue start %dms after end %dms", start, end)
	}

	return start, end, nil
}

// parseTimestamp parses "HH:MM:SS,mmm" (a dot is accepted in place of the comma)
func parseTimestamp(ts string) (int, error) {
	ts = strings.ReplaceAll(ts, ".", ",")
	mainAndMillis := strings.SplitN(ts, ",", 2)
	if len(mainAndMillis) != 2 {
		return 0, fmt.Errorf("invalid timestamp: %q", ts)
	}

	hms := strings.Split(mainAndMillis[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp: %q", ts)
	}

	hours, err := strconv.Atoi(hms[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in timestamp %q", ts)
	}
	minutes, err := strconv.Atoi(hms[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in timestamp %q", ts)
	}
	seconds, err := strconv.Atoi(hms[2])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timestamp %q", ts)
	}
	millis, err := strconv.Atoi(mainAndMillis[1])
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds in timestamp %q", ts)
	}

	if minutes > 59 || seconds > 59 || millis > 999 {
		return 0, fmt.Errorf("timestamp out of range: %q", ts)
	}

	return ((hours*60+minutes)*60+seconds)*1000 + millis, nil
}
