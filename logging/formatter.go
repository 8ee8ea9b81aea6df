package logging

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hooktools/core/tui/theme"
)

// TextFormatter renders entries as single text lines:
//
//	2006-01-02 15:04:05 [LEVEL] [component] message key=value
//
// The component tag takes the theme's accent style so it stands out when
// several components interleave in one log.
type TextFormatter struct {
	Config FormatConfig
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", levelTag(entry.Level))

	if !f.Config.DisableComponent {
		if component, ok := entry.Data["component"]; ok {
			fmt.Fprintf(&b, " [%s]", theme.DefaultTheme.Accent.Render(fmt.Sprint(component)))
		}
	}
	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]",
			filepath.Base(entry.Caller.File),
			entry.Caller.Line,
			filepath.Base(entry.Caller.Function))
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)

	for _, key := range fieldKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", key, entry.Data[key])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

// fieldKeys returns the entry's extra field names in stable order. The
// component field is rendered as its own tag, not as a field.
func fieldKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
