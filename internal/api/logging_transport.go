// Package api provides the HTTP plumbing shared by the space-weather
// fetchers: an optional request/response logging transport writing api.log.
package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	openTransportsMu sync.Mutex
	openTransports   []*LoggingTransport
)

// LoggingTransport wraps an http.RoundTripper and appends request and
// response summaries to a log file. Bodies are logged only for textual
// content types; image and chart downloads stay out of the log.
type LoggingTransport struct {
	transport http.RoundTripper
	mu        sync.Mutex
	logFile   *os.File
}

// NewLoggingTransport opens logFilePath for appending and returns a
// transport that logs every round trip through it. A nil base transport
// falls back to http.DefaultTransport.
func NewLoggingTransport(transport http.RoundTripper, logFilePath string) (*LoggingTransport, error) {
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open API log file %s: %w", logFilePath, err)
	}

	if transport == nil {
		transport = http.DefaultTransport
	}

	t := &LoggingTransport{transport: transport, logFile: f}

	openTransportsMu.Lock()
	openTransports = append(openTransports, t)
	openTransportsMu.Unlock()

	return t, nil
}

// RoundTrip executes a single HTTP transaction, logging details.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqDump, dumpErr := httputil.DumpRequestOut(req, false)
	if dumpErr != nil {
		log.WithError(dumpErr).Error("Failed to dump API request for logging")
	} else {
		t.writeLog(fmt.Sprintf("--- Request (%s) ---\n%s", start.Format(time.RFC3339), string(reqDump)))
	}

	resp, err := t.transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.writeLog(fmt.Sprintf("--- Response Error (Duration: %v) ---\n%s", duration, err.Error()))
		return resp, err
	}

	contentType := resp.Header.Get("Content-Type")
	logBody := strings.HasPrefix(contentType, "application/json") ||
		strings.HasPrefix(contentType, "text/")

	if logBody {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			log.WithError(readErr).Error("Failed to read response body for logging")
			t.writeLog(fmt.Sprintf("--- Response (Duration: %v) ---\nStatus: %s\n(body read failed)", duration, resp.Status))
			resp.Body = io.NopCloser(strings.NewReader(""))
			return resp, nil
		}
		// Restore the body so the caller can read it.
		resp.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))
		t.writeLog(fmt.Sprintf("--- Response (Duration: %v, Type: %s) ---\nStatus: %s\n%s",
			duration, contentType, resp.Status, string(bodyBytes)))
	} else {
		t.writeLog(fmt.Sprintf("--- Response (Duration: %v, Type: %s) ---\nStatus: %s\n(body not logged)",
			duration, contentType, resp.Status))
	}

	return resp, nil
}

func (t *LoggingTransport) writeLog(entry string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintf(t.logFile, "%s\n\n", entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to API log file: %v\n", err)
	}
}

// Close closes the underlying log file.
func (t *LoggingTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logFile.Close()
}

// CloseAllLoggingTransports closes every transport opened during this run.
// Called from main on exit.
func CloseAllLoggingTransports() {
	openTransportsMu.Lock()
	defer openTransportsMu.Unlock()
	for _, t := range openTransports {
		if err := t.Close(); err != nil {
			log.WithError(err).Error("Error closing API log file")
		}
	}
	openTransports = nil
}
