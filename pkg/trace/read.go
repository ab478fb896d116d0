package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxLine bounds a single transcript line.
const maxLine = 1024 * 1024

// ReadFile decodes every event of a transcript file.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a JSONL transcript. Blank lines are skipped.
func Read(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	var events []Event
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return events, nil
}

// GroupByRun splits events per run id, keeping first-seen run order.
func GroupByRun(events []Event) (order []string, runs map[string][]Event) {
	runs = make(map[string][]Event)
	for _, evt := range events {
		if _, seen := runs[evt.RunID]; !seen {
			order = append(order, evt.RunID)
		}
		runs[evt.RunID] = append(runs[evt.RunID], evt)
	}
	return order, runs
}
