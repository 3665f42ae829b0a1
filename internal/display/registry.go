package display

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// AutoDetect selects the first available registered provider
const AutoDetect = "auto"

// detectionOrder ranks providers during auto-detection. Names not listed
// here follow in registration order.
var detectionOrder = []string{"wayland", "x11", "native"}

type registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	names     []string
}

var providers = &registry{providers: make(map[string]Provider)}

// Register adds a display server provider, keyed by its DisplayInfo name.
// Registering a name twice replaces the earlier provider. Backends call it
// from init().
func Register(provider Provider) {
	name := provider.GetDisplayInfo().Name

	providers.mu.Lock()
	defer providers.mu.Unlock()

	if _, ok := providers.providers[name]; !ok {
		providers.names = append(providers.names, name)
	}
	providers.providers[name] = provider
}

func rank(name string) int {
	if i := slices.Index(detectionOrder, name); i >= 0 {
		return i
	}
	return len(detectionOrder)
}

// GetAllProviders returns every registered provider in detection order
func GetAllProviders() []Provider {
	providers.mu.RLock()
	defer providers.mu.RUnlock()

	names := slices.Clone(providers.names)
	slices.SortStableFunc(names, func(a, b string) int { return rank(a) - rank(b) })

	out := make([]Provider, 0, len(names))
	for _, name := range names {
		out = append(out, providers.providers[name])
	}
	return out
}

// DetectDisplay returns the first available provider in detection order
func DetectDisplay() (Provider, error) {
	all := GetAllProviders()
	tried := make([]string, 0, len(all))
	for _, p := range all {
		if p.IsAvailable() {
			return p, nil
		}
		tried = append(tried, p.GetDisplayInfo().Name)
	}
	if len(tried) == 0 {
		return nil, fmt.Errorf("no compatible display server detected (no providers registered)")
	}
	return nil, fmt.Errorf("no compatible display server detected (tried %s)", strings.Join(tried, ", "))
}

// SelectProvider returns the provider named by server, or auto-detects when
// server is empty or "auto"
func SelectProvider(server string) (Provider, error) {
	if server == "" || server == AutoDetect {
		return DetectDisplay()
	}

	p := GetProvider(server)
	if p == nil {
		return nil, fmt.Errorf("display server %q is not registered", server)
	}
	if !p.IsAvailable() {
		return nil, fmt.Errorf("display server %q is not available on this system", server)
	}
	return p, nil
}

// GetProvider returns the provider registered under name, or nil
func GetProvider(name string) Provider {
	providers.mu.RLock()
	defer providers.mu.RUnlock()
	return providers.providers[name]
}

// ClearProviders removes every registered provider
func ClearProviders() {
	providers.mu.Lock()
	defer providers.mu.Unlock()
	providers.providers = make(map[string]Provider)
	providers.names = nil
}
