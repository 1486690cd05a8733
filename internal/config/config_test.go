package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				AWS: AWSConfig{
					Region: "us-east-1",
					Bucket: "clinic-audio",
				},
				Paths: PathsConfig{
					Output: "transcripts",
				},
			},
			wantErr: false,
		},
		{
			name: "missing region",
			config: Config{
				AWS: AWSConfig{
					Bucket: "clinic-audio",
				},
				Paths: PathsConfig{
					Output: "transcripts",
				},
			},
			wantErr: true,
		},
		{
			name: "missing bucket",
			config: Config{
				AWS: AWSConfig{
					Region: "us-east-1",
				},
				Paths: PathsConfig{
					Output: "transcripts",
				},
			},
			wantErr: true,
		},
		{
			name: "missing output dir",
			config: Config{
				AWS: AWSConfig{
					Region: "us-east-1",
					Bucket: "clinic-audio",
				},
			},
			wantErr: true,
		},
		{
			name: "openai provider without key",
			config: Config{
				AWS: AWSConfig{
					Region: "us-east-1",
					Bucket: "clinic-audio",
				},
				Paths: PathsConfig{
					Output: "transcripts",
				},
				LLM: LLMConfig{Provider: "openai"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		AWS: AWSConfig{
			Region: "us-east-1",
			Bucket: "clinic-audio",
		},
		Paths: PathsConfig{
			Output: "transcripts",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %v, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Transcribe.Language != "en-US" {
		t.Errorf("Language = %v, want en-US", cfg.Transcribe.Language)
	}
	if cfg.Transcribe.MaxSpeakers != 4 {
		t.Errorf("MaxSpeakers = %v, want 4", cfg.Transcribe.MaxSpeakers)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("SampleRate = %v, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Roles.Classifier != "heuristic" {
		t.Errorf("Classifier = %v, want heuristic when no llm provider", cfg.Roles.Classifier)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Logging.Level)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  listen_addr: ":9090"

aws:
  region: "eu-west-1"
  bucket: "clinic-audio"
  s3_accelerate: true

transcribe:
  medical: true
  specialty: "cardiology"

llm:
  provider: "openai"
  api_key: "${SCRIBE_TEST_OPENAI_KEY}"

paths:
  output: "transcripts"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SCRIBE_TEST_OPENAI_KEY", "sk-test")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %v, want :9090", cfg.Server.ListenAddr)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Errorf("Region = %v, want eu-west-1", cfg.AWS.Region)
	}
	if !cfg.Transcribe.Medical {
		t.Error("Medical = false, want true")
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("APIKey = %v, want env-expanded sk-test", cfg.LLM.APIKey)
	}
	if cfg.Roles.Classifier != "llm" {
		t.Errorf("Classifier = %v, want llm when a provider is configured", cfg.Roles.Classifier)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
