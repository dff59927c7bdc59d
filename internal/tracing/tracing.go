package tracing

import (
	"io"

	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type tracingConfig interface {
	ServiceName() string
	AgentAddr() string
}

// Init installs a Jaeger tracer as the global opentracing tracer.
// Close the returned closer to flush spans on shutdown.
func Init(config tracingConfig) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: config.ServiceName(),
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: config.AgentAddr(),
		},
	}

	closer, err := cfg.InitGlobalTracer(config.ServiceName())
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer")
	}
	return closer, nil
}
