package analyzer

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// MarshalSummary encodes s as indented JSON. Output is byte-stable for equal
// summaries.
func MarshalSummary(s *Summary) ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}
	return data, nil
}

// WriteSummary writes the indented JSON summary followed by a newline.
func WriteSummary(w io.Writer, s *Summary) error {
	data, err := MarshalSummary(s)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
