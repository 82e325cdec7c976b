// Package log provides the run logger: per-file progress on the console,
// text and/or JSON entries in an append-only log file.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	logJSON bool
	logText bool
}

func New(logFilePath string, logJSON, logText bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		console: os.Stdout,
		file:    file,
		logJSON: logJSON,
		logText: logText,
	}, nil
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type LogEntry struct {
	Timestamp time.Time        `json:"timestamp"`
	Level     string           `json:"level"`
	Message   string           `json:"message"`
	Source    string           `json:"source,omitempty"`
	Dest      string           `json:"dest,omitempty"`
	Action    types.CopyAction `json:"action,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// LogTask records one copy decision. The console line mirrors what the user
// cares about: what the file became and where it came from.
func (l *Logger) LogTask(task types.CopyTask) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Message:   fmt.Sprintf("%s: %s -> %s", task.Action, task.Source.Name, task.DestPath),
		Source:    task.Source.Path,
		Dest:      task.DestPath,
		Action:    task.Action,
	}
	if task.Error != "" {
		entry.Level = "ERROR"
		entry.Error = task.Error
	}
	l.writeEntry(entry)

	if task.Error != "" {
		fmt.Fprintf(l.console, "Failed: %s (%s)\n", task.Source.Name, task.Error)
		return
	}
	if task.Renamed {
		fmt.Fprintf(l.console, "Copied and renamed: %s <- %s\n", filepath.Base(task.DestPath), task.Source.Name)
	} else {
		fmt.Fprintf(l.console, "Copied: %s -> %s\n", task.Source.Name, filepath.Base(task.DestPath))
	}
}

func (l *Logger) Info(msg string) {
	l.log("INFO", msg, "")
}

func (l *Logger) Warn(msg string) {
	l.log("WARN", msg, "")
}

func (l *Logger) Error(msg string, err error) {
	l.log("ERROR", msg, err.Error())
}

func (l *Logger) log(level, msg, errMsg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writeEntry(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Error:     errMsg,
	})
}

func (l *Logger) writeEntry(entry LogEntry) {
	if l.file == nil {
		return
	}

	if l.logJSON {
		data, _ := json.Marshal(entry)
		l.file.Write(data)
		l.file.Write([]byte("\n"))
	}

	if l.logText {
		line := fmt.Sprintf("[%s] %s %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Level,
			entry.Message,
		)
		if entry.Error != "" {
			line = fmt.Sprintf("[%s] %s %s - Error: %s\n",
				entry.Timestamp.Format("2006-01-02 15:04:05"),
				entry.Level,
				entry.Message,
				entry.Error,
			)
		}
		l.file.WriteString(line)
	}
}

func (l *Logger) Summary(summary types.RunSummary) {
	fmt.Fprintln(l.console, "\n=== Run Summary ===")
	fmt.Fprintf(l.console, "Scanned:        %d\n", summary.ScannedFiles)
	fmt.Fprintf(l.console, "Organized:      %d\n", summary.Organized)
	fmt.Fprintf(l.console, "No metadata:    %d\n", summary.NoMetadata)
	fmt.Fprintf(l.console, "Unrecognized:   %d\n", summary.Unrecognized)
	fmt.Fprintf(l.console, "Skipped:        %d\n", summary.Skipped)
	fmt.Fprintf(l.console, "Quarantined:    %d\n", summary.Quarantined)
	fmt.Fprintf(l.console, "Failed:         %d\n", summary.Failed)
	fmt.Fprintf(l.console, "Duration:       %s\n", summary.Duration.Round(time.Second))
	if summary.BytesCopied > 0 {
		fmt.Fprintf(l.console, "Bytes copied:   %.2f MB\n", float64(summary.BytesCopied)/1024/1024)
	}
	fmt.Fprintln(l.console, "===================")
}
