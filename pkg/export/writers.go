package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ranger/pkg/registry"
)

// Sink consumes one snapshot per export tick.
type Sink interface {
	Write(tsNS int64, s registry.Snapshot) error
}

// JSONLWriter emits one JSON object per tick:
// {"ts_ns":123,"run":"<uuid>","data":{"d":[0.343,...]}}
// The run id ties lines from one process lifetime together.
type JSONLWriter struct {
	enc   *json.Encoder
	runID string
}

type jsonlLine struct {
	TsNS int64     `json:"ts_ns"`
	Run  string    `json:"run"`
	Data jsonlData `json:"data"`
}

type jsonlData struct {
	D []float64 `json:"d"`
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w), runID: uuid.NewString()}
}

// RunID returns the identifier stamped on every line.
func (j *JSONLWriter) RunID() string { return j.runID }

func (j *JSONLWriter) Write(tsNS int64, s registry.Snapshot) error {
	line := jsonlLine{TsNS: tsNS, Run: j.runID, Data: jsonlData{D: s.DistancesM}}
	if err := j.enc.Encode(line); err != nil {
		return fmt.Errorf("failed to write jsonl record: %w", err)
	}
	return nil
}

// CSVWriter emits a header row on first write, then one row per tick:
// ts_ns,d0,...,dN-1 with distances at three decimals.
type CSVWriter struct {
	w           io.Writer
	wroteHeader bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

func (c *CSVWriter) Write(tsNS int64, s registry.Snapshot) error {
	if !c.wroteHeader {
		var h strings.Builder
		h.WriteString("ts_ns")
		for i := range s.DistancesM {
			h.WriteString(",d")
			h.WriteString(strconv.Itoa(i))
		}
		h.WriteByte('\n')
		if _, err := io.WriteString(c.w, h.String()); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		c.wroteHeader = true
	}

	var b strings.Builder
	b.WriteString(strconv.FormatInt(tsNS, 10))
	b.WriteByte(',')
	b.WriteString(Distances(s))
	b.WriteByte('\n')
	if _, err := io.WriteString(c.w, b.String()); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

// LineWriter adapts the plain text formats to the Sink interface; used
// for stdout and log-file export.
type LineWriter struct {
	w     io.Writer
	stats bool
}

func NewLineWriter(w io.Writer, withStats bool) *LineWriter {
	return &LineWriter{w: w, stats: withStats}
}

func (l *LineWriter) Write(tsNS int64, s registry.Snapshot) error {
	line := Distances(s)
	if l.stats {
		line += "\n" + Stats(s)
	}
	if _, err := fmt.Fprintln(l.w, line); err != nil {
		return fmt.Errorf("failed to write snapshot line: %w", err)
	}
	return nil
}
