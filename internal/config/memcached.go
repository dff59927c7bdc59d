package config

import "time"

const (
	defaultProfileTTLSeconds = 60
	// cached profiles carry the plan, a downgrade is seen once the entry expires
	maxProfileTTLSeconds = 300
)

type MemcachedConfig struct {
	NodeHosts  []string `yaml:"hosts"`
	TTLSeconds int32    `yaml:"profile-ttl-seconds"`
}

// setDefaults keeps entries expiring, memcached treats a zero TTL as forever.
func (s *MemcachedConfig) setDefaults() {
	if s.TTLSeconds <= 0 {
		s.TTLSeconds = defaultProfileTTLSeconds
	}
	if s.TTLSeconds > maxProfileTTLSeconds {
		s.TTLSeconds = maxProfileTTLSeconds
	}
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

func (s *MemcachedConfig) Enabled() bool {
	return len(s.NodeHosts) > 0
}

func (s *MemcachedConfig) ProfileTTL() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}
