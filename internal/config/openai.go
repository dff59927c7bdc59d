package config

import "time"

const (
	defaultReportModel    = "gpt-4o-mini"
	defaultTimeoutSeconds = 60
)

type OpenAIConfig struct {
	Key            string `yaml:"api-key"`
	URL            string `yaml:"base-url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int64  `yaml:"timeout-seconds"`
}

func (o *OpenAIConfig) setDefaults() {
	if o.Model == "" {
		o.Model = defaultReportModel
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (o *OpenAIConfig) ApiKey() string {
	return o.Key
}

// HasCredential reports whether real generation is enabled.
func (o *OpenAIConfig) HasCredential() bool {
	return o.Key != ""
}

func (o *OpenAIConfig) BaseURL() string {
	return o.URL
}

func (o *OpenAIConfig) ReportModel() string {
	return o.Model
}

func (o *OpenAIConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}
