package sinks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arnavsurve/stepshot/pkg/log"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/fatih/color"
)

type ConsoleSink struct {
	out io.Writer
}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{out: os.Stdout}
}

// NewConsoleSinkTo writes to out instead of stdout.
func NewConsoleSinkTo(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (c *ConsoleSink) Write(event *log.LogEvent) error {
	runID := getStringField(event.Fields, "run_id")
	action := getStringField(event.Fields, "action")
	selector := getStringField(event.Fields, "selector")
	msg := event.Message
	errorMsg := getStringField(event.Fields, "error")
	levelStr := strings.ToUpper(log.LevelString(event.Level))
	timestampStr := event.Timestamp.Format(time.RFC3339)

	levelColorMap := map[types.Level]*color.Color{
		types.DebugLevel: color.New(color.FgCyan),
		types.InfoLevel:  color.New(color.FgGreen),
		types.WarnLevel:  color.New(color.FgYellow),
		types.ErrorLevel: color.New(color.FgRed),
		types.FatalLevel: color.New(color.FgRed, color.Bold),
	}

	levelFmt := color.New(color.FgWhite).SprintFunc()
	if lc, ok := levelColorMap[event.Level]; ok {
		levelFmt = lc.SprintFunc()
	}

	timestampFmt := color.New(color.FgWhite).SprintFunc()
	stepLabel := "run"
	if idx, ok := event.Fields["step_index"].(float64); ok {
		stepLabel = fmt.Sprintf("step %d", int(idx)+1)
		if action != "" {
			stepLabel += " " + action
		}
	}
	if runID != "" {
		stepLabel = fmt.Sprintf("%s/%s", shortID(runID), stepLabel)
	}

	commonPrefix := fmt.Sprintf("[%s %s] %s: ",
		levelFmt(levelStr),
		timestampFmt(timestampStr),
		color.CyanString(stepLabel),
	)

	var output string
	switch {
	case errorMsg != "" && msg != "":
		output = fmt.Sprintf("%s%s: %s", commonPrefix, msg, color.RedString(errorMsg))
	case errorMsg != "":
		output = fmt.Sprintf("%s%s", commonPrefix, color.RedString(errorMsg))
	case msg != "" && selector != "":
		output = fmt.Sprintf("%s%s [%s]", commonPrefix, msg, color.BlueString(selector))
	case msg != "":
		output = fmt.Sprintf("%s%s", commonPrefix, msg)
	default:
		fieldsStr, _ := json.MarshalIndent(event.Fields, "", "  ")
		output = fmt.Sprintf("%s%s", commonPrefix, string(fieldsStr))
	}
	_, err := fmt.Fprintln(c.out, output)
	return err
}

// Helper to safely get string field from LogEvent.Fields
func getStringField(fields map[string]any, key string) string {
	if val, ok := fields[key]; ok {
		if strVal, isStr := val.(string); isStr {
			return strVal
		}
	}
	return ""
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (c *ConsoleSink) Close() error {
	return nil // Console doesn't need closing
}
