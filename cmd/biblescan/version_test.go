package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	if got := getVersion(); got == "" {
		t.Error("expected version to be non-empty")
	}
}

func TestGetCommit(t *testing.T) {
	t.Parallel()

	if got := getCommit(); got == "" {
		t.Error("expected commit to be non-empty")
	}
}

func TestGetDate(t *testing.T) {
	t.Parallel()

	if got := getDate(); got == "" {
		t.Error("expected date to be non-empty")
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		cmd := NewVersionCmd()
		if cmd.Use != "version" {
			t.Errorf("expected use 'version', got %s", cmd.Use)
		}
	})

	t.Run("prints version information", func(t *testing.T) {
		t.Parallel()

		cmd := NewVersionCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "biblescan version") {
			t.Errorf("expected output to contain 'biblescan version', got %q", output)
		}
		if !strings.Contains(output, "commit:") {
			t.Errorf("expected output to contain 'commit:', got %q", output)
		}
		if !strings.Contains(output, "built:") {
			t.Errorf("expected output to contain 'built:', got %q", output)
		}
	})
}
