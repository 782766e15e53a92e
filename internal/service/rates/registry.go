package rates

import (
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/interfaces"
)

// Registry - провайдеры по уровням в порядке регистрации (порядок = приоритет)
type Registry struct {
	tiers map[domain.Tier][]registered
}

type registered struct {
	name     string
	tier     domain.Tier
	provider interfaces.Provider
}

func NewRegistry(providers ...interfaces.Provider) *Registry {
	r := &Registry{tiers: make(map[domain.Tier][]registered)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p interfaces.Provider) {
	tier := p.Type()
	r.tiers[tier] = append(r.tiers[tier], registered{name: p.Name(), tier: tier, provider: p})
}

// Names - для логов при старте
func (r *Registry) Names() map[domain.Tier][]string {
	out := make(map[domain.Tier][]string, len(r.tiers))
	for tier, regs := range r.tiers {
		for _, reg := range regs {
			out[tier] = append(out[tier], reg.name)
		}
	}
	return out
}

func (r *Registry) entries(tier domain.Tier) []registered {
	return r.tiers[tier]
}
