package joindin

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/logger"
)

// The session engine provides an interface to allow for storage of session data
type (
	SessionEngine interface {
		Decode(c *Controller) // Called to decode the session information on the controller
		Encode(c *Controller) // Called to encode the session information on the controller
	}

	// SessionEngineOptions are handed to an engine factory.
	SessionEngineOptions struct {
		// Zero expires the session with the browser.
		ExpireAfterDuration time.Duration
		Cache               cache.Cache
		Log                 logger.MultiLogger
	}

	SessionEngineFactory func(o SessionEngineOptions) (SessionEngine, error)
)

var (
	sessionEngineMu  sync.RWMutex
	sessionEngineMap = map[string]SessionEngineFactory{}
)

// RegisterSessionEngine makes an engine available under name for session.engine.
func RegisterSessionEngine(f SessionEngineFactory, name string) {
	sessionEngineMu.Lock()
	defer sessionEngineMu.Unlock()
	sessionEngineMap[name] = f
}

// SessionEngines lists the registered engine names.
func SessionEngines() []string {
	sessionEngineMu.RLock()
	defer sessionEngineMu.RUnlock()
	names := make([]string, 0, len(sessionEngineMap))
	for name := range sessionEngineMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSessionEngine creates the engine registered under name.
func NewSessionEngine(name string, o SessionEngineOptions) (SessionEngine, error) {
	sessionEngineMu.RLock()
	f, found := sessionEngineMap[name]
	sessionEngineMu.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSessionStore, name, SessionEngines())
	}
	if o.Log == nil {
		o.Log = logger.New("section", "session-engine")
	}
	return f(o)
}

func init() {
	RegisterSessionEngine(newCookieEngine, "cookie")
	RegisterSessionEngine(newCacheEngine, "cache")
}
