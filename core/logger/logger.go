package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// EventType distinguishes the kinds of events the shell records.
type EventType string

const (
	// EventExec is recorded when a child process is started.
	EventExec EventType = "exec"
	// EventExit is recorded when a child exits normally.
	EventExit EventType = "exit"
	// EventSignaled is recorded when a child is terminated by a signal.
	EventSignaled EventType = "signaled"
	// EventLaunchFailure is recorded when no child could be created.
	EventLaunchFailure EventType = "launch_failure"
)

// LogEntry is a single event in the newline delimited JSON log.
type LogEntry struct {
	TimestampMicros int64     `json:"timestamp_micros"`
	SessionID       string    `json:"session_id,omitempty"`
	Event           EventType `json:"event"`

	Argv       []string `json:"argv,omitempty"`
	Path       string   `json:"path,omitempty"`
	Pid        int      `json:"pid,omitempty"`
	Background bool     `json:"background,omitempty"`
	ExitStatus int      `json:"exit_status,omitempty"`
	Signal     string   `json:"signal,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures command execution events.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards all events.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			return nil
		},
	}
}

func (l *Logger) record(sessionID string, le *LogEntry) error {
	le.TimestampMicros = time.Now().UnixMicro()
	le.SessionID = sessionID

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// Exec records the start of a child process.
func (l *SessionLogger) Exec(argv []string, path string, pid int, background bool) error {
	return l.record(l.sessionID, &LogEntry{
		Event:      EventExec,
		Argv:       argv,
		Path:       path,
		Pid:        pid,
		Background: background,
	})
}

// Exit records the exit status of a reaped child.
func (l *SessionLogger) Exit(pid int, status int) error {
	return l.record(l.sessionID, &LogEntry{
		Event:      EventExit,
		Pid:        pid,
		ExitStatus: status,
	})
}

// Signaled records a child terminated by a signal.
func (l *SessionLogger) Signaled(pid int, signal string) error {
	return l.record(l.sessionID, &LogEntry{
		Event:  EventSignaled,
		Pid:    pid,
		Signal: signal,
	})
}

// LaunchFailure records a command that produced no child at all.
func (l *SessionLogger) LaunchFailure(argv []string, cause error) error {
	return l.record(l.sessionID, &LogEntry{
		Event: EventLaunchFailure,
		Argv:  argv,
		Error: cause.Error(),
	})
}
