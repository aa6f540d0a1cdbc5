package timeline

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
)

// RTTM column positions after whitespace tokenisation.
const (
	rttmType     = 0
	rttmStart    = 3
	rttmDuration = 4
	rttmSpeaker  = 7
	rttmMinCols  = 8
)

var thousand = decimal.NewFromInt(1000)

// ParseRTTM reads SPEAKER records from r. Records that fail to parse are
// skipped, logged at WARN and returned as MALFORMED_TIMELINE_RECORD errors.
// Blank lines, ";;" comments and non-SPEAKER records are ignored. The
// returned error is non-nil only when r itself fails.
func ParseRTTM(r io.Reader, log *logger.Logger) ([]Turn, []*errors.AppError, error) {
	if log == nil {
		log = logger.Nop()
	}
	var (
		turns   []Turn
		skipped []*errors.AppError
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";;") {
			continue
		}
		fields := strings.Fields(line)
		if !strings.EqualFold(fields[rttmType], "SPEAKER") {
			continue
		}

		turn, err := parseRecord(fields)
		if err != nil {
			appErr := errors.MalformedTimelineRecord(lineNo, err.Error())
			log.Warn("timeline record skipped", logger.Fields("line", lineNo, "reason", err.Error()))
			skipped = append(skipped, appErr)
			continue
		}
		turns = append(turns, turn)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read rttm: %w", err)
	}
	return turns, skipped, nil
}

func parseRecord(fields []string) (Turn, error) {
	if len(fields) < rttmMinCols {
		return Turn{}, fmt.Errorf("expected at least %d columns, got %d", rttmMinCols, len(fields))
	}
	start, err := secondsToMs(fields[rttmStart])
	if err != nil {
		return Turn{}, fmt.Errorf("start: %w", err)
	}
	dur, err := secondsToMs(fields[rttmDuration])
	if err != nil {
		return Turn{}, fmt.Errorf("duration: %w", err)
	}
	speaker, err := SpeakerID(fields[rttmSpeaker])
	if err != nil {
		return Turn{}, err
	}
	return Turn{StartMs: start, EndMs: start + dur, SpeakerID: speaker}, nil
}

// secondsToMs converts a decimal seconds string to whole milliseconds,
// rounding half away from zero.
func secondsToMs(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative value %q", s)
	}
	return Milliseconds(d), nil
}

// Milliseconds converts seconds to whole milliseconds, rounding half away
// from zero.
func Milliseconds(seconds decimal.Decimal) int64 {
	return seconds.Mul(thousand).Round(0).IntPart()
}

// SpeakerID extracts the numeric id from a diarizer label such as
// "SPEAKER_01" or "speaker_3".
func SpeakerID(label string) (int, error) {
	tail := label
	if i := strings.LastIndex(label, "_"); i >= 0 {
		tail = label[i+1:]
	}
	id, err := strconv.Atoi(tail)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("speaker label %q has no numeric id", label)
	}
	return id, nil
}
