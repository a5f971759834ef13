package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"-i", "images.txt", "-m", "some-model"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("output dir: expected %q, got %q", DefaultOutputDir, cfg.OutputDir)
	}
	if cfg.Region != DefaultRegion {
		t.Errorf("region: expected %q, got %q", DefaultRegion, cfg.Region)
	}
	if cfg.Duration != DefaultDuration*time.Second {
		t.Errorf("duration: expected %v, got %v", DefaultDuration*time.Second, cfg.Duration)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("workers: expected %d, got %d", DefaultWorkers, cfg.Workers)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("log file: expected %q, got %q", DefaultLogFile, cfg.LogFile)
	}
}

func TestLoad_LongFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--image-list", "images.txt",
		"--model", "some-model",
		"--output-dir", "/tmp/out",
		"--region", "eu-west4",
		"--duration", "10",
		"--threads", "8",
		"--log-file", "/tmp/run.log",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "/tmp/out" || cfg.Region != "eu-west4" || cfg.Workers != 8 ||
		cfg.Duration != 10*time.Second || cfg.LogFile != "/tmp/run.log" {
		t.Fatalf("long flags not applied: %+v", cfg)
	}
}

func TestLoad_MissingImageList(t *testing.T) {
	if _, err := Load([]string{"-m", "some-model"}); err == nil {
		t.Fatal("expected an error when the image list is missing")
	}
}

func TestLoad_MissingModel(t *testing.T) {
	if _, err := Load([]string{"-i", "images.txt"}); err == nil {
		t.Fatal("expected an error when the model is missing")
	}
}

func TestLoad_RejectsInvalidWorkers(t *testing.T) {
	if _, err := Load([]string{"-i", "images.txt", "-m", "m", "-t", "0"}); err == nil {
		t.Fatal("expected an error for zero workers")
	}
}

func TestLoad_RejectsNegativeDuration(t *testing.T) {
	if _, err := Load([]string{"-i", "images.txt", "-m", "m", "-d", "-5"}); err == nil {
		t.Fatal("expected an error for a negative duration")
	}
}

func TestLoad_ZeroDurationIsValid(t *testing.T) {
	cfg, err := Load([]string{"-i", "images.txt", "-m", "m", "-d", "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Duration != 0 {
		t.Fatalf("expected zero duration, got %v", cfg.Duration)
	}
}

func TestLoad_ConfigFileFillsUnsetOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := "image_list: from-file.txt\nmodel: file-model\nthreads: 8\nduration: 30\nregion: eu-west4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load([]string{"-c", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ImageList != "from-file.txt" || cfg.Model != "file-model" ||
		cfg.Workers != 8 || cfg.Duration != 30*time.Second || cfg.Region != "eu-west4" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoad_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := "image_list: from-file.txt\nmodel: file-model\nthreads: 8\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load([]string{"-c", path, "-t", "3", "-i", "from-flag.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers: flag should win over file, got %d", cfg.Workers)
	}
	if cfg.ImageList != "from-flag.txt" {
		t.Errorf("image list: flag should win over file, got %q", cfg.ImageList)
	}
	if cfg.Model != "file-model" {
		t.Errorf("model: file value should fill the unset flag, got %q", cfg.Model)
	}
}

func TestLoad_UnreadableConfigFile(t *testing.T) {
	if _, err := Load([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("threads: [not a number\n"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	if _, err := Load([]string{"-c", path}); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
