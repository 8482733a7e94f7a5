package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		cmd := NewInitCmd()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %s", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewInitCmd()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag to exist")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %s", flag.Shorthand)
		}
		if flag.DefValue != configFileName {
			t.Errorf("expected default value %q, got %s", configFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewInitCmd()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag to exist")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %s", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default value 'false', got %s", flag.DefValue)
		}
	})
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, configFileName)

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", configPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("expected config file to exist: %v", err)
		}

		if !strings.Contains(string(content), "defaults:") {
			t.Error("expected config to contain defaults section")
		}
		if !strings.Contains(string(content), "translations:") {
			t.Error("expected config to contain translations section")
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, configFileName)

		if err := os.WriteFile(configPath, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", configPath})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for existing file")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, configFileName)

		if err := os.WriteFile(configPath, []byte("old content"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", configPath, "-f"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error with force flag, got %v", err)
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) == "old content" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "nested", "dir", configFileName)

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", configPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("expected config file in nested directory: %v", err)
		}
	})

	t.Run("creates file with restricted permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("file permissions work differently on Windows")
		}

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, configFileName)

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", configPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(configPath)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	content, err := configTemplate.ReadFile("templates/biblescan.yaml")
	if err != nil {
		t.Fatalf("expected embedded template to be readable: %v", err)
	}

	if len(content) == 0 {
		t.Fatal("expected template to be non-empty")
	}

	text := string(content)
	if !strings.Contains(text, "translations:") {
		t.Error("expected template to document the translations section")
	}
	if !strings.Contains(text, "ignorePatterns:") {
		t.Error("expected template to document ignore patterns")
	}
	if !strings.Contains(text, "#") {
		t.Error("expected template to contain explanatory comments")
	}
}
