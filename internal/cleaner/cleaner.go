package cleaner

import (
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
)

// Cleaner best-effort memory reclamation triggered on critical RAM
// pressure. Runs are rate limited so repeated critical samples do not
// thrash the system.
type Cleaner struct {
	config  *config.CleanerConfig
	mu      sync.Mutex
	lastRun time.Time
	now     func() time.Time
}

// NewCleaner creates a cleaner
func NewCleaner(cfg *config.CleanerConfig) *Cleaner {
	return &Cleaner{
		config: cfg,
		now:    time.Now,
	}
}

// Run frees memory back to the OS and asks the kernel to drop page
// caches. Returns false when disabled or still inside the minimum
// interval.
func (c *Cleaner) Run() bool {
	if !c.config.Enabled {
		return false
	}

	c.mu.Lock()
	now := c.now()
	if !c.lastRun.IsZero() && now.Sub(c.lastRun) < c.config.MinInterval {
		c.mu.Unlock()
		return false
	}
	c.lastRun = now
	c.mu.Unlock()

	debug.FreeOSMemory()

	// needs root; failure is expected and harmless otherwise
	if err := os.WriteFile("/proc/sys/vm/drop_caches", []byte("1"), 0200); err != nil {
		log.Printf("drop_caches not available: %v", err)
	} else {
		log.Printf("kernel page cache drop requested")
	}

	log.Printf("memory cleanup completed")
	return true
}
