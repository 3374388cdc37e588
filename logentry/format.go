package logentry

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/parc/buffer"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
)

// Formatter renders an entry into a new buffer owned by the caller.
type Formatter interface {
	Format(rt *object.Runtime, entry *object.Object[Entry]) (*object.Object[buffer.Buffer], error)
}

// TextOptions configures the Text formatter. A nil *TextOptions means
// defaults.
type TextOptions struct {
	// TimeFormat is the layout for timestamps. Default time.RFC3339Nano.
	TimeFormat string
	// Color renders the level name with a terminal color.
	Color bool
	// UTC converts timestamps to UTC before formatting.
	UTC bool
}

var levelStyles = map[Level]lipgloss.Style{
	LevelEmergency: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#D7263D")),
	LevelAlert:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	LevelCritical:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	LevelError:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	LevelWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")),
	LevelNotice:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	LevelInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
	LevelDebug:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
}

// Text formats entries as a single human-readable line:
//
//	2026-01-02T15:04:05Z ERROR app[1234]: message
type Text struct {
	opts TextOptions
}

// NewText returns a text formatter.
func NewText(opts *TextOptions) *Text {
	t := &Text{}
	if opts != nil {
		t.opts = *opts
	}
	if t.opts.TimeFormat == "" {
		t.opts.TimeFormat = time.RFC3339Nano
	}
	return t
}

func (t *Text) Format(rt *object.Runtime, entry *object.Object[Entry]) (*object.Object[buffer.Buffer], error) {
	e, err := entryValue(entry)
	if err != nil {
		return nil, err
	}
	ts := e.timestamp
	if t.opts.UTC {
		ts = ts.UTC()
	}
	level := e.level.String()
	if t.opts.Color {
		if style, ok := levelStyles[e.level]; ok {
			level = style.Render(level)
		}
	}

	var b strings.Builder
	b.WriteString(ts.Format(t.opts.TimeFormat))
	b.WriteByte(' ')
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(e.application)
	if e.process != "" {
		b.WriteByte('[')
		b.WriteString(e.process)
		b.WriteByte(']')
	}
	if e.messageID != "" {
		b.WriteByte(' ')
		b.WriteString(e.messageID)
	}
	b.WriteString(": ")
	b.WriteString(e.Message())
	b.WriteByte('\n')
	return buffer.Wrap(rt, []byte(b.String())), nil
}

// FacilityUser is the syslog facility used when none is configured.
const FacilityUser = 1

const syslogTime = "2006-01-02T15:04:05.000000Z07:00"

// Syslog formats entries as RFC 5424 messages without structured data.
type Syslog struct {
	Facility int
}

// NewSyslog returns a syslog formatter for the given facility (0-23).
func NewSyslog(facility int) (*Syslog, error) {
	if facility < 0 || facility > 23 {
		return nil, errors.InvalidInput(errors.PhaseFormat, "syslog facility "+strconv.Itoa(facility)+" out of range")
	}
	return &Syslog{Facility: facility}, nil
}

func (s *Syslog) Format(rt *object.Runtime, entry *object.Object[Entry]) (*object.Object[buffer.Buffer], error) {
	e, err := entryValue(entry)
	if err != nil {
		return nil, err
	}
	if !e.level.Valid() {
		return nil, errors.InvalidInput(errors.PhaseFormat, "level "+e.level.String()+" has no syslog severity")
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(strconv.Itoa(s.Facility*8 + e.level.Severity()))
	b.WriteByte('>')
	b.WriteString(strconv.Itoa(e.version))
	b.WriteByte(' ')
	if e.timestamp.IsZero() {
		b.WriteByte('-')
	} else {
		b.WriteString(e.timestamp.UTC().Format(syslogTime))
	}
	b.WriteByte(' ')
	b.WriteString(headerField(e.hostname, 255))
	b.WriteByte(' ')
	b.WriteString(headerField(e.application, 48))
	b.WriteByte(' ')
	b.WriteString(headerField(e.process, 128))
	b.WriteByte(' ')
	b.WriteString(headerField(e.messageID, 32))
	b.WriteString(" -")
	if msg := e.Message(); msg != "" {
		b.WriteByte(' ')
		b.WriteString(msg)
	}
	b.WriteByte('\n')
	return buffer.Wrap(rt, []byte(b.String())), nil
}

// headerField maps a header value to printable US-ASCII without spaces,
// truncated to limit bytes. Empty values become the nil value "-".
func headerField(v string, limit int) string {
	if v == "" {
		return "-"
	}
	out := []byte(v)
	if len(out) > limit {
		out = out[:limit]
	}
	for i, c := range out {
		if c < 33 || c > 126 {
			out[i] = '_'
		}
	}
	return string(out)
}

// JSON formats entries as one JSON object per line.
type JSON struct{}

type jsonRecord struct {
	Version     int    `json:"version"`
	Level       string `json:"level"`
	Timestamp   string `json:"timestamp"`
	Hostname    string `json:"hostname,omitempty"`
	Application string `json:"application,omitempty"`
	Process     string `json:"process,omitempty"`
	MessageID   string `json:"msgid,omitempty"`
	Message     string `json:"message"`
}

var jsonConfig = sonic.ConfigStd

func (JSON) Format(rt *object.Runtime, entry *object.Object[Entry]) (*object.Object[buffer.Buffer], error) {
	e, err := entryValue(entry)
	if err != nil {
		return nil, err
	}
	data, err := jsonConfig.Marshal(jsonRecord{
		Version:     e.version,
		Level:       strings.ToLower(e.level.String()),
		Timestamp:   e.timestamp.UTC().Format(time.RFC3339Nano),
		Hostname:    e.hostname,
		Application: e.application,
		Process:     e.process,
		MessageID:   e.messageID,
		Message:     e.Message(),
	})
	if err != nil {
		return nil, errors.New(errors.PhaseFormat, errors.KindInvalidInput).
			Object("logentry@" + entry.ID().String()).
			Cause(err).
			Detail("marshal entry").
			Build()
	}
	return buffer.Wrap(rt, append(data, '\n')), nil
}

func entryValue(entry *object.Object[Entry]) (*Entry, error) {
	if !object.MustBeAlive(entry, errors.PhaseFormat) {
		return nil, errors.New(errors.PhaseFormat, errors.KindContractViolation).
			Detail("format of released entry").
			Build()
	}
	return entry.Value(), nil
}
