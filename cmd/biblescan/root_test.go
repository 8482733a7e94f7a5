package main

import (
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if cmd.Use != "biblescan" {
			t.Errorf("expected use 'biblescan', got %s", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if cmd.Short == "" {
			t.Error("expected short description to be set")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if cmd.Long == "" {
			t.Error("expected long description to be set")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if cmd.Version == "" {
			t.Error("expected version to be set")
		}
	})

	t.Run("has verbose persistent flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag to exist")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %s", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default value 'false', got %s", flag.DefValue)
		}
	})

	t.Run("has expected subcommands", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		expected := []string{"scan", "compare", "history", "init", "version"}

		found := make(map[string]bool)
		for _, sub := range cmd.Commands() {
			found[sub.Name()] = true
		}

		for _, name := range expected {
			if !found[name] {
				t.Errorf("expected subcommand %q to be registered", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}
