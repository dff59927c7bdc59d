package config

type TracingConfig struct {
	Service string `yaml:"service-name"`
	Agent   string `yaml:"agent-addr"`
}

func (t *TracingConfig) ServiceName() string {
	return t.Service
}

func (t *TracingConfig) AgentAddr() string {
	return t.Agent
}
