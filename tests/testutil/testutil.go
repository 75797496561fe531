package testutil

import (
	"os"
	"strings"
	"testing"
)

// RequireTestEnvironment fails the test immediately unless GO_ENV is "test".
// Suites that touch a database call this before connecting so a stray
// DATABASE_URL can never point them at a real store.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("tests must run with GO_ENV=test, got %q", env)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" && !strings.Contains(url, "test") {
		t.Fatalf("DATABASE_URL does not look like a test database: %q", url)
	}
}

// RequireTestEnvironmentOrSkip skips instead of failing. Used by optional
// suites that only make sense against the dockerized test stack.
func RequireTestEnvironmentOrSkip(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Skipf("skipping: GO_ENV must be \"test\" (got %q)", env)
	}
}
