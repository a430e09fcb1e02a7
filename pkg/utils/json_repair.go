package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// Repair extracts the structured payload opened by opener ('{' or '[') from a
// generated reply. The steps run in a fixed order: strip code fences, trim,
// slice the span from the first opener to the last matching closer, parse.
// There is no second attempt with a different span.
func Repair(raw string, opener byte) (json.RawMessage, error) {
	closer, err := closerFor(opener)
	if err != nil {
		return nil, err
	}

	text := codeFenceRe.ReplaceAllString(raw, "")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, string(opener)) || !strings.HasSuffix(text, string(closer)) {
		start := strings.IndexByte(text, opener)
		end := strings.LastIndexByte(text, closer)
		if start == -1 || end == -1 || end < start {
			return nil, &MalformedStructuredResponseError{
				Raw:   raw,
				Cause: fmt.Errorf("no %q...%q span found", opener, closer),
			}
		}
		text = text[start : end+1]
	}

	if !json.Valid([]byte(text)) {
		return nil, &MalformedStructuredResponseError{Raw: raw, Cause: fmt.Errorf("invalid json")}
	}
	return json.RawMessage(text), nil
}

// RepairObject repairs an object-shaped reply and decodes it into dst.
func RepairObject(raw string, dst any) error {
	return repairInto(raw, '{', dst)
}

// RepairArray repairs an array-shaped reply and decodes it into dst.
func RepairArray(raw string, dst any) error {
	return repairInto(raw, '[', dst)
}

func repairInto(raw string, opener byte, dst any) error {
	payload, err := Repair(raw, opener)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return &MalformedStructuredResponseError{Raw: raw, Cause: err}
	}
	return nil
}

func closerFor(opener byte) (byte, error) {
	switch opener {
	case '{':
		return '}', nil
	case '[':
		return ']', nil
	default:
		return 0, fmt.Errorf("unsupported opener %q", opener)
	}
}
