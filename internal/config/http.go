package config

const defaultHTTPAddr = ":8080"

type HTTPConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (h *HTTPConfig) setDefaults() {
	if h.ListenAddr == "" {
		h.ListenAddr = defaultHTTPAddr
	}
}

func (h *HTTPConfig) Addr() string {
	return h.ListenAddr
}
