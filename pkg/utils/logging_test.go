package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"TRACE", TRACE, false},
		{"debug", DEBUG, false},
		{"Info", INFO, false},
		{"WARN", WARN, false},
		{"WARNING", WARN, false},
		{"error", ERROR, false},
		{"FATAL", FATAL, false},
		{" info ", INFO, false},
		{"verbose", INFO, true},
		{"", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  string
	}{
		{TRACE, "TRACE"},
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]LogFormat{"": FormatText, "text": FormatText, "JSON": FormatJSON} {
		got, err := ParseLogFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseLogFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLogFormat("xml"); err == nil {
		t.Error("ParseLogFormat(xml) should fail")
	}
}

func TestOpenLogOutput(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "stdout", "stderr"} {
		w, err := OpenLogOutput(name)
		if err != nil {
			t.Fatalf("OpenLogOutput(%q) error = %v", name, err)
		}
		if _, ok := w.(*os.File); ok {
			t.Errorf("OpenLogOutput(%q) returned a closable file", name)
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "posixfs.log")
	w, err := OpenLogOutput(path)
	if err != nil {
		t.Fatalf("OpenLogOutput(file) error = %v", err)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello\n" {
		t.Errorf("log file content = %q, %v", data, err)
	}

	if _, err := OpenLogOutput(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("OpenLogOutput into a missing directory should fail")
	}
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posixfs.log")

	logger, err := SetupLogging("debug", path, "text")
	if err != nil {
		t.Fatalf("SetupLogging() error = %v", err)
	}
	t.Cleanup(func() { SetDefaultLogger(nil) })

	if DefaultLogger() != logger {
		t.Error("SetupLogging() did not install the default logger")
	}
	logger.Debug("mounted", map[string]interface{}{"volume": "vol1"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[DEBUG]") || !strings.Contains(string(data), "volume=vol1") {
		t.Errorf("log file = %q", data)
	}

	// writes after Close are discarded
	logger.Info("after close")

	if _, err := SetupLogging("loud", "", ""); err == nil {
		t.Error("SetupLogging with a bad level should fail")
	}
	if _, err := SetupLogging("info", "", "xml"); err == nil {
		t.Error("SetupLogging with a bad format should fail")
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{128 * 1024, "128.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
