package logentry

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/wippyai/parc/buffer"
	"github.com/wippyai/parc/object"
)

// Version is the record format version stamped on new entries.
const Version = 1

// Fields carries the optional header fields of an entry. Zero fields are
// filled from the process: hostname, executable name, pid and current time.
type Fields struct {
	Timestamp   time.Time
	Hostname    string
	Application string
	Process     string
	MessageID   string
}

// Entry is a managed log record. It holds one reference to its payload
// buffer, released when the entry is destroyed.
type Entry struct {
	version     int
	level       Level
	timestamp   time.Time
	hostname    string
	application string
	process     string
	messageID   string
	payload     *object.Object[buffer.Buffer]
}

var class = &object.Class[Entry]{Name: "logentry"}

// New creates an entry at level carrying payload. The entry acquires its own
// reference to payload; the caller keeps theirs. f may be nil.
func New(rt *object.Runtime, level Level, payload *object.Object[buffer.Buffer], f *Fields) *object.Object[Entry] {
	if f == nil {
		f = &Fields{}
	}
	var held *object.Object[buffer.Buffer]
	if payload != nil {
		if held = payload.Acquire(); held == nil {
			return nil
		}
	}
	return object.New(rt, class, func(e *Entry) {
		e.version = Version
		e.level = level
		e.timestamp = f.Timestamp
		e.hostname = f.Hostname
		e.application = f.Application
		e.process = f.Process
		e.messageID = f.MessageID
		e.payload = held

		if e.timestamp.IsZero() {
			e.timestamp = time.Now()
		}
		if e.hostname == "" {
			e.hostname = defaultHostname()
		}
		if e.application == "" {
			e.application = defaultApplication()
		}
		if e.process == "" {
			e.process = strconv.Itoa(os.Getpid())
		}
	})
}

// NewString creates an entry whose payload is a read-only view of msg.
func NewString(rt *object.Runtime, level Level, msg string, f *Fields) *object.Object[Entry] {
	payload := buffer.WrapString(rt, msg)
	defer object.Release(&payload)
	return New(rt, level, payload, f)
}

// Destroy releases the payload.
func (e *Entry) Destroy() {
	if e.payload != nil {
		object.Release(&e.payload)
	}
}

func (e *Entry) Version() int         { return e.version }
func (e *Entry) Level() Level         { return e.level }
func (e *Entry) Timestamp() time.Time { return e.timestamp }
func (e *Entry) Hostname() string     { return e.hostname }
func (e *Entry) Application() string  { return e.application }
func (e *Entry) Process() string      { return e.process }
func (e *Entry) MessageID() string    { return e.messageID }

// Payload returns the payload buffer without adding a reference.
func (e *Entry) Payload() *object.Object[buffer.Buffer] {
	return e.payload
}

// Message returns the remaining payload content as a string.
func (e *Entry) Message() string {
	if e.payload == nil {
		return ""
	}
	b := e.payload.Value()
	if b == nil {
		return ""
	}
	return b.String()
}

func (e *Entry) String() string {
	return e.level.String() + " " + e.Message()
}

var (
	hostOnce sync.Once
	hostname string
)

func defaultHostname() string {
	hostOnce.Do(func() {
		hostname, _ = os.Hostname()
		if hostname == "" {
			hostname = "localhost"
		}
	})
	return hostname
}

func defaultApplication() string {
	if len(os.Args) == 0 {
		return "parc"
	}
	return filepath.Base(os.Args[0])
}
