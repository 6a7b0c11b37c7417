package config

import (
	"os"
	"testing"
)

func TestGetenv(t *testing.T) {
	os.Unsetenv("TEST_GETENV")
	if result := getenv("TEST_GETENV", "default"); result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	t.Setenv("TEST_GETENV", "test-value")
	if result := getenv("TEST_GETENV", "default"); result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}
}

func TestGetenvInt(t *testing.T) {
	os.Unsetenv("TEST_GETENV_INT")
	if result := getenvInt("TEST_GETENV_INT", 42); result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	t.Setenv("TEST_GETENV_INT", "100")
	if result := getenvInt("TEST_GETENV_INT", 42); result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	t.Setenv("TEST_GETENV_INT", "not-an-int")
	if result := getenvInt("TEST_GETENV_INT", 42); result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}
}

func TestGetenvBool(t *testing.T) {
	os.Unsetenv("TEST_GETENV_BOOL")
	if result := getenvBool("TEST_GETENV_BOOL", true); result != true {
		t.Errorf("Expected default value true, got %v", result)
	}

	t.Setenv("TEST_GETENV_BOOL", "true")
	if result := getenvBool("TEST_GETENV_BOOL", false); result != true {
		t.Errorf("Expected true, got %v", result)
	}

	t.Setenv("TEST_GETENV_BOOL", "not-a-bool")
	if result := getenvBool("TEST_GETENV_BOOL", false); result != false {
		t.Errorf("Expected default value false, got %v", result)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"COURSE_REPORT_INPUT",
		"SFTP_HOST", "SFTP_PORT", "SFTP_USER", "SFTP_PASS", "SFTP_DIR",
		"SFTP_INSECURE_IGNORE_HOST_KEY",
	} {
		os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.InputPath != "" {
		t.Errorf("Expected empty InputPath, got %q", cfg.InputPath)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("Expected default SFTPPort 22, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPDir != "/knowledge/certifications" {
		t.Errorf("Expected default SFTPDir '/knowledge/certifications', got %q", cfg.SFTPDir)
	}
	if cfg.SFTPInsecureIgnoreHostKey {
		t.Error("Expected SFTPInsecureIgnoreHostKey to default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COURSE_REPORT_INPUT", "/data/complete_courses.csv")
	t.Setenv("SFTP_HOST", "drop.example.com")
	t.Setenv("SFTP_PORT", "2222")

	cfg := Load()

	if cfg.InputPath != "/data/complete_courses.csv" {
		t.Errorf("Expected InputPath from env, got %q", cfg.InputPath)
	}
	if cfg.SFTPHost != "drop.example.com" {
		t.Errorf("Expected SFTPHost from env, got %q", cfg.SFTPHost)
	}
	if cfg.SFTPPort != 2222 {
		t.Errorf("Expected SFTPPort 2222, got %d", cfg.SFTPPort)
	}
}
