// Package logging wires up logrus the way the teacher's
// internal/logging package does: a level parser, a choice of formatters
// (JSON, pretty-printed JSON, or a terse human-readable text mode), and a
// pretty-printer good enough for local CLI use without pulling in a
// heavier structured-logging stack.
package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GetLevel maps a config string to a logrus.Level, defaulting to Info for
// an empty value and rejecting anything unrecognized.
func GetLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.DebugLevel, fmt.Errorf("invalid log level: %v", level)
	}
}

// GetFormatter resolves a config string to a logrus.Formatter. "text"
// selects the pretty, human-oriented formatter below; "json-pretty"
// indents the JSON encoding; anything else (including the empty string)
// is compact JSON, which is what a long-running "ground" invocation piped
// into another tool should default to.
func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case "text":
		return &prettyFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// NewRunLogger builds a *logrus.Entry carrying a fresh run-ID field, used
// to correlate every log line that belongs to a single grounding
// invocation. The run ID is not attached to trace spans.
func NewRunLogger(level logrus.Level, formatter logrus.Formatter) *logrus.Entry {
	base := logrus.New()
	base.SetLevel(level)
	base.SetFormatter(formatter)
	return base.WithField("run_id", uuid.NewString())
}

// prettyFormatter is a simplified, more readable alternative to logrus's
// built-in text formatter: one "[LEVEL] message" line followed by each
// field indented underneath, multi-line string fields preserved verbatim.
type prettyFormatter struct{}

func isJSON(buf []byte) bool {
	var tmp interface{}
	return json.Unmarshal(buf, &tmp) == nil
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)

	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(b, "[%s] %s\n", level, e.Message)

	const fieldIndent, multiLineIndent = 2, 6
	for k, v := range e.Data {
		stringVal, ok := v.(string)
		switch {
		case ok && strings.Contains(stringVal, "\n"):
			var sb strings.Builder
			for i, line := range strings.Split(stringVal, "\n") {
				if i != 0 {
					sb.WriteString(spaces(multiLineIndent))
				}
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			stringVal = sb.String()
		case ok && isJSON([]byte(stringVal)):
			var tmp bytes.Buffer
			if err := json.Indent(&tmp, []byte(stringVal), spaces(multiLineIndent), spaces(2)); err != nil {
				return nil, err
			}
			stringVal = tmp.String()
		default:
			jsonVal, err := json.MarshalIndent(v, spaces(multiLineIndent), spaces(2))
			if err != nil {
				return nil, err
			}
			stringVal = string(jsonVal)
		}

		b.WriteString(spaces(fieldIndent))
		b.WriteString(k)
		if strings.Contains(stringVal, "\n") {
			b.WriteString(" = |\n")
			b.WriteString(spaces(multiLineIndent))
		} else {
			b.WriteString(" = ")
		}
		b.WriteString(stringVal)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
