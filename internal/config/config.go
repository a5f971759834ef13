package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir = "./output"
	DefaultRegion    = "us-central1"
	DefaultDuration  = 300
	DefaultWorkers   = 2
	DefaultLogFile   = "./processing_errors.log"
)

// Config is the immutable run configuration, built once at startup and passed
// into the runner and processor. Core logic never reads flags or the
// environment on its own.
type Config struct {
	ImageList string
	OutputDir string
	Region    string
	Project   string
	Duration  time.Duration
	Workers   int
	LogFile   string
	Model     string
}

// fileConfig mirrors the optional YAML config file. Pointers distinguish
// "absent" from zero for the numeric fields.
type fileConfig struct {
	ImageList string `yaml:"image_list"`
	OutputDir string `yaml:"output_dir"`
	Region    string `yaml:"region"`
	Duration  *int   `yaml:"duration"`
	Threads   *int   `yaml:"threads"`
	LogFile   string `yaml:"log_file"`
	Model     string `yaml:"model"`
}

// Load parses the command line and the optional YAML config file into a
// Config. Precedence: explicit flags > config file > built-in defaults.
// A .env file is loaded first when present so PROJECT and credentials can
// live next to the binary.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("screenshot-batch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		imageList  string
		outputDir  string
		region     string
		duration   int
		workers    int
		logFile    string
		model      string
		configFile string
	)
	fs.StringVar(&imageList, "i", "", "file containing list of image paths")
	fs.StringVar(&imageList, "image-list", "", "file containing list of image paths")
	fs.StringVar(&outputDir, "o", DefaultOutputDir, "output directory")
	fs.StringVar(&outputDir, "output-dir", DefaultOutputDir, "output directory")
	fs.StringVar(&region, "r", DefaultRegion, "region for the inference endpoint")
	fs.StringVar(&region, "region", DefaultRegion, "region for the inference endpoint")
	fs.IntVar(&duration, "d", DefaultDuration, "duration to run in seconds")
	fs.IntVar(&duration, "duration", DefaultDuration, "duration to run in seconds")
	fs.IntVar(&workers, "t", DefaultWorkers, "number of concurrent workers")
	fs.IntVar(&workers, "threads", DefaultWorkers, "number of concurrent workers")
	fs.StringVar(&logFile, "l", DefaultLogFile, "log file path")
	fs.StringVar(&logFile, "log-file", DefaultLogFile, "log file path")
	fs.StringVar(&model, "m", "", "model or inference profile identifier")
	fs.StringVar(&model, "model", "", "model or inference profile identifier")
	fs.StringVar(&configFile, "c", "", "optional YAML config file")
	fs.StringVar(&configFile, "config", "", "optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[canonical(f.Name)] = true })

	if configFile != "" {
		fc, err := loadFile(configFile)
		if err != nil {
			return nil, err
		}
		if !set["image-list"] && fc.ImageList != "" {
			imageList = fc.ImageList
		}
		if !set["output-dir"] && fc.OutputDir != "" {
			outputDir = fc.OutputDir
		}
		if !set["region"] && fc.Region != "" {
			region = fc.Region
		}
		if !set["duration"] && fc.Duration != nil {
			duration = *fc.Duration
		}
		if !set["threads"] && fc.Threads != nil {
			workers = *fc.Threads
		}
		if !set["log-file"] && fc.LogFile != "" {
			logFile = fc.LogFile
		}
		if !set["model"] && fc.Model != "" {
			model = fc.Model
		}
	}

	cfg := &Config{
		ImageList: imageList,
		OutputDir: outputDir,
		Region:    region,
		Project:   project(),
		Duration:  time.Duration(duration) * time.Second,
		Workers:   workers,
		LogFile:   logFile,
		Model:     model,
	}
	if err := cfg.validate(duration); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(durationSeconds int) error {
	if c.ImageList == "" {
		return errors.New("image list path is required (-i)")
	}
	if c.Model == "" {
		return errors.New("model identifier is required (-m)")
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Workers)
	}
	if durationSeconds < 0 {
		return fmt.Errorf("duration must not be negative, got %d", durationSeconds)
	}
	return nil
}

func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}

func project() string {
	if p := os.Getenv("PROJECT"); p != "" {
		return p
	}
	return os.Getenv("GOOGLE_CLOUD_PROJECT")
}

// canonical collapses the short flag aliases onto their long names so the
// config-file merge only has one name per option to check.
func canonical(name string) string {
	switch name {
	case "i":
		return "image-list"
	case "o":
		return "output-dir"
	case "r":
		return "region"
	case "d":
		return "duration"
	case "t":
		return "threads"
	case "l":
		return "log-file"
	case "m":
		return "model"
	case "c":
		return "config"
	}
	return name
}
