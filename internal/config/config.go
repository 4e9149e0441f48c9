// Package config loads the pipeline configuration from a YAML file. Secrets
// (API keys, tokens) come from the environment, not the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Drive     DriveConfig     `yaml:"drive"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	Providers ProvidersConfig `yaml:"providers"`
	Output    OutputConfig    `yaml:"output"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

type DriveConfig struct {
	InboxFolderID      string   `yaml:"inbox_folder_id"`
	QuarantineFolderID string   `yaml:"quarantine_folder_id"`
	MimePrefixes       []string `yaml:"mime_prefixes"`
}

type WhisperConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	ModelPath   string `yaml:"model_path"`
	Language    string `yaml:"language"`
	TrimSilence bool   `yaml:"trim_silence"`
	BestOf      int    `yaml:"best_of"`
	Threads     int    `yaml:"threads"`
}

type ProvidersConfig struct {
	GeminiModel   string `yaml:"gemini_model"`
	OpenAIModel   string `yaml:"openai_model"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
}

type OutputConfig struct {
	WorkbookPath string `yaml:"workbook_path"`
	Sheet        string `yaml:"sheet"`
}

type LedgerConfig struct {
	DBPath string `yaml:"db_path"`
}

type PipelineConfig struct {
	Workers        int    `yaml:"workers"`
	ScratchDir     string `yaml:"scratch_dir"`
	PromptTemplate string `yaml:"prompt_template"`
	DefaultOwner   string `yaml:"default_owner"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	if c.Drive.InboxFolderID == "" {
		return fmt.Errorf("drive.inbox_folder_id is required")
	}
	if c.Drive.QuarantineFolderID == "" {
		return fmt.Errorf("drive.quarantine_folder_id is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}

	if len(c.Drive.MimePrefixes) == 0 {
		c.Drive.MimePrefixes = []string{"audio/", "video/"}
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.BestOf == 0 {
		c.Whisper.BestOf = 5
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Providers.GeminiModel == "" {
		c.Providers.GeminiModel = "gemini-2.5-flash"
	}
	if c.Output.WorkbookPath == "" {
		c.Output.WorkbookPath = "data/meeting_insights.xlsx"
	}
	if c.Output.Sheet == "" {
		c.Output.Sheet = "Records"
	}
	if c.Ledger.DBPath == "" {
		c.Ledger.DBPath = "data/ledger.db"
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = 2
	}
	if c.Pipeline.ScratchDir == "" {
		c.Pipeline.ScratchDir = "data/scratch"
	}
	return nil
}
