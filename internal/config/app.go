package config

import "time"

const (
	defaultPlaceholderDelaySeconds = 5
	defaultFreeMonthlyTransactions = 10
)

type AppConfig struct {
	StorageDriver           string `yaml:"storage"`
	PlaceholderDelaySeconds int64  `yaml:"placeholder-delay-seconds"`
	FreeTransactions        int    `yaml:"free-monthly-transactions"`
}

func (s *AppConfig) setDefaults() {
	if s.StorageDriver == "" {
		s.StorageDriver = "postgres"
	}
	if s.PlaceholderDelaySeconds <= 0 {
		s.PlaceholderDelaySeconds = defaultPlaceholderDelaySeconds
	}
	if s.FreeTransactions <= 0 {
		s.FreeTransactions = defaultFreeMonthlyTransactions
	}
}

func (s *AppConfig) Storage() string {
	return s.StorageDriver
}

func (s *AppConfig) PlaceholderDelay() time.Duration {
	return time.Duration(s.PlaceholderDelaySeconds) * time.Second
}

func (s *AppConfig) FreeMonthlyTransactions() int {
	return s.FreeTransactions
}
