package poller

import (
	"encoding/json"
	"os"
)

// FileCache stores the last-known snapshot as JSON on disk, the CLI analog
// of the storefront page's localStorage hydration. Load and Store swallow
// I/O errors: a broken cache only costs the warm start.
type FileCache struct {
	Path string
}

func (c *FileCache) Load() (Pricing, bool) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		return Pricing{}, false
	}
	var v Pricing
	if err := json.Unmarshal(b, &v); err != nil {
		return Pricing{}, false
	}
	return v, true
}

func (c *FileCache) Store(v Pricing) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.Path, b, 0o644)
}
