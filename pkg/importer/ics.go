package importer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/urenlog/urenlog/pkg/phase"
)

// CalendarEvent is one VEVENT extracted from an ICS export.
type CalendarEvent struct {
	Summary  string
	Location string
	Start    time.Time
	End      time.Time
}

// ParseICS extracts the VEVENT blocks of an ICS file. Only the fields the
// import cares about are read: SUMMARY, DTSTART, DTEND, and LOCATION.
// Folded continuation lines (leading space or tab) are unfolded first.
func ParseICS(r io.Reader) ([]CalendarEvent, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += strings.TrimLeft(line, " \t")
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read calendar file: %w", err)
	}

	var events []CalendarEvent
	var current *CalendarEvent
	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			current = &CalendarEvent{}
		case line == "END:VEVENT":
			if current != nil {
				events = append(events, *current)
				current = nil
			}
		case current != nil:
			name, value, ok := splitICSLine(line)
			if !ok {
				continue
			}
			switch name {
			case "SUMMARY":
				current.Summary = unescapeICS(value)
			case "LOCATION":
				current.Location = unescapeICS(value)
			case "DTSTART":
				current.Start, _ = decodeICSTime(value)
			case "DTEND":
				current.End, _ = decodeICSTime(value)
			}
		}
	}

	return events, nil
}

// splitICSLine splits "NAME;PARAM=X:value" into the bare property name and
// its value, dropping parameters such as TZID.
func splitICSLine(line string) (string, string, bool) {
	sep := strings.Index(line, ":")
	if sep < 0 {
		return "", "", false
	}
	name := line[:sep]
	if paramSep := strings.Index(name, ";"); paramSep >= 0 {
		name = name[:paramSep]
	}
	return strings.ToUpper(name), line[sep+1:], true
}

func unescapeICS(value string) string {
	replacer := strings.NewReplacer("\\n", " ", "\\,", ",", "\\;", ";", "\\\\", "\\")
	return strings.TrimSpace(replacer.Replace(value))
}

// decodeICSTime decodes the three date-time forms calendar exports use:
// UTC ("20240112T090000Z"), naive local ("20240112T090000"), and all-day
// ("20240112").
func decodeICSTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch {
	case strings.HasSuffix(value, "Z"):
		return time.Parse("20060102T150405Z", value)
	case strings.Contains(value, "T"):
		return time.ParseInLocation("20060102T150405", value, time.Local)
	default:
		return time.ParseInLocation("20060102", value, time.Local)
	}
}

// EventToRow turns a calendar event into one candidate import row. The
// duration is the event length in whole minutes, floored at zero; the
// phase is a fixed placeholder since calendars carry no phase information;
// the note combines the event title with its location when present.
func EventToRow(event CalendarEvent) Row {
	minutes := 0
	if !event.Start.IsZero() && !event.End.IsZero() {
		minutes = int(event.End.Sub(event.Start).Minutes())
		if minutes < 0 {
			minutes = 0
		}
	}

	note := event.Summary
	if event.Location != "" {
		note = fmt.Sprintf("%s (%s)", event.Summary, event.Location)
	}

	dateText := ""
	if !event.Start.IsZero() {
		dateText = event.Start.Format("2006-01-02")
	}

	return Row{
		ProjectName: event.Summary,
		PhaseLabel:  phase.PlaceholderCode,
		DateText:    dateText,
		HoursText:   hoursText(minutes),
		Notes:       note,
	}
}

// hoursText renders minutes as an hours string in the NL decimal notation
// the normalizer expects, so re-normalizing an edited row stays stable.
func hoursText(minutes int) string {
	hours := strconv.FormatFloat(float64(minutes)/60.0, 'f', -1, 64)
	return strings.ReplaceAll(hours, ".", ",")
}
