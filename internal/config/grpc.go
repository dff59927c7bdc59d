package config

const defaultGRPCAddr = ":50051"

type GRPCConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (g *GRPCConfig) setDefaults() {
	if g.ListenAddr == "" {
		g.ListenAddr = defaultGRPCAddr
	}
}

func (g *GRPCConfig) Addr() string {
	return g.ListenAddr
}
