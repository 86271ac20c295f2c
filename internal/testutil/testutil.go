package testutil

import (
	"log"
	"math/rand"
	"os"
	"testing"
	"time"
)

// Random string for unique prefixes
func RandString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// Utility: Wait for a condition or timeout
func WaitFor(t *testing.T, cond func() bool, timeout time.Duration, tick time.Duration, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(tick)
	}
	t.Fatalf("WaitFor timeout: %s", msg)
}

// Helper for creating a test logger that discards or logs as needed
func NewTestLogger(verbose bool) *log.Logger {
	if verbose {
		return log.New(os.Stdout, "[test] ", log.LstdFlags)
	}
	return log.New(os.Stderr, "[test] ", log.LstdFlags)
}
