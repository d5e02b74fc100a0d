package ollama

import (
	"github.com/yildizm/LifeStrat/internal/ai"
)

const providerName = "ollama"

// Factory builds an Ollama provider from generic provider config
func Factory(cfg *ai.ProviderConfig) (ai.Provider, error) {
	p, err := New(FromProviderConfig(cfg))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Register adds the Ollama factory to r
func Register(r *ai.Registry) error {
	return r.Register(providerName, Factory)
}
