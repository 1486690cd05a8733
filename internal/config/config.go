package config

import "fmt"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	AWS        AWSConfig        `yaml:"aws"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	LLM        LLMConfig        `yaml:"llm"`
	Audio      AudioConfig      `yaml:"audio"`
	Paths      PathsConfig      `yaml:"paths"`
	Roles      RolesConfig      `yaml:"roles"`
	Summary    SummaryConfig    `yaml:"summary"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

type AWSConfig struct {
	Region           string `yaml:"region"`
	Bucket           string `yaml:"bucket"`
	S3Accelerate     bool   `yaml:"s3_accelerate"`
	S3MaxConcurrency int    `yaml:"s3_max_concurrency"`
	S3PartSizeMB     int    `yaml:"s3_part_size_mb"`
}

type TranscribeConfig struct {
	Medical               bool   `yaml:"medical"`
	Language              string `yaml:"language"`
	Specialty             string `yaml:"specialty"`
	ChannelIdentification bool   `yaml:"channel_identification"`
	MaxSpeakers           int    `yaml:"max_speakers"`
	PollIntervalSec       int    `yaml:"poll_interval_sec"`
	TimeoutMin            int    `yaml:"timeout_min"`
}

type LLMConfig struct {
	Provider      string   `yaml:"provider"` // "openai", "gemini" or "none"
	Model         string   `yaml:"model"`
	APIKey        string   `yaml:"api_key"`
	GeminiAPIKeys []string `yaml:"gemini_api_keys"`
}

type AudioConfig struct {
	ForceReencode bool   `yaml:"force_reencode"`
	SampleRate    int    `yaml:"sample_rate"`
	Channels      int    `yaml:"channels"`
	Bitrate       string `yaml:"bitrate"`
	TempDir       string `yaml:"temp_dir"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Input  string `yaml:"input"` // optional drop-folder; empty disables the watcher
}

type RolesConfig struct {
	Classifier string `yaml:"classifier"` // "heuristic" or "llm"
}

type SummaryConfig struct {
	ExportDocx bool `yaml:"export_docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.AWS.Region == "" {
		return fmt.Errorf("aws.region is required")
	}
	if c.AWS.Bucket == "" {
		return fmt.Errorf("aws.bucket is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.LLM.Provider == "openai" && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for the openai provider")
	}
	if c.LLM.Provider == "gemini" && len(c.LLM.GeminiAPIKeys) == 0 {
		return fmt.Errorf("llm.gemini_api_keys is required for the gemini provider")
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 50
	}
	if c.AWS.S3MaxConcurrency == 0 {
		c.AWS.S3MaxConcurrency = 16
	}
	if c.AWS.S3PartSizeMB == 0 {
		c.AWS.S3PartSizeMB = 8
	}
	if c.Transcribe.Language == "" {
		c.Transcribe.Language = "en-US"
	}
	if c.Transcribe.Specialty == "" {
		c.Transcribe.Specialty = "primarycare"
	}
	if c.Transcribe.MaxSpeakers == 0 {
		c.Transcribe.MaxSpeakers = 4
	}
	if c.Transcribe.PollIntervalSec == 0 {
		c.Transcribe.PollIntervalSec = 3
	}
	if c.Transcribe.TimeoutMin == 0 {
		c.Transcribe.TimeoutMin = 120
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "none"
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "gemini":
			c.LLM.Model = "gemini-2.5-flash"
		default:
			c.LLM.Model = "gpt-4o-mini"
		}
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = "64k"
	}
	if c.Audio.TempDir == "" {
		c.Audio.TempDir = "local_audio"
	}
	if c.Roles.Classifier == "" {
		if c.LLM.Provider != "none" {
			c.Roles.Classifier = "llm"
		} else {
			c.Roles.Classifier = "heuristic"
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
