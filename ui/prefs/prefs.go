// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"

	"image-view/pkg/colorutil"
)

const (
	appDir    = "image-view"
	prefsFile = "preferences.json"
)

// Preference keys.
const (
	KeyLastDirectory    = "lastDirectory"
	KeyLastFile         = "lastFile"
	KeyWindowWidth      = "windowWidth"
	KeyWindowHeight     = "windowHeight"
	KeySettleDelay      = "settleDelay"
	KeyQualityThreshold = "qualityThreshold"
	KeyBackground       = "background"
	KeyGrid             = "grid"
	KeyWatchFile        = "watchFile"
)

// Prefs stores application preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Path returns the default preferences location,
// $XDG_CONFIG_HOME/image-view/preferences.json or its platform equivalent.
func Path() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Load reads preferences from the default location.
// Returns empty Prefs if the file doesn't exist or is malformed.
func Load() *Prefs {
	return LoadFrom(Path())
}

// LoadFrom reads preferences from path.
func LoadFrom(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		p.values = make(map[string]interface{})
	}
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

func (p *Prefs) number(key string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		}
	}
	return 0, false
}

// Float returns a float64 preference, or 0 if not set.
func (p *Prefs) Float(key string) float64 {
	n, _ := p.number(key)
	return n
}

// FloatWithFallback returns a float64 preference, or fallback if not set.
func (p *Prefs) FloatWithFallback(key string, fallback float64) float64 {
	if n, ok := p.number(key); ok {
		return n
	}
	return fallback
}

// SetFloat stores a float64 preference.
func (p *Prefs) SetFloat(key string, val float64) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Int returns an int preference, or fallback if not set.
func (p *Prefs) Int(key string, fallback int) int {
	if n, ok := p.number(key); ok {
		return int(n)
	}
	return fallback
}

// SetInt stores an int preference.
func (p *Prefs) SetInt(key string, val int) {
	p.SetFloat(key, float64(val))
}

// Duration returns a duration preference stored as milliseconds, or fallback.
func (p *Prefs) Duration(key string, fallback time.Duration) time.Duration {
	if n, ok := p.number(key); ok {
		return time.Duration(n * float64(time.Millisecond))
	}
	return fallback
}

// SetDuration stores a duration as milliseconds.
func (p *Prefs) SetDuration(key string, val time.Duration) {
	p.SetFloat(key, float64(val)/float64(time.Millisecond))
}

// String returns a string preference, or "" if not set.
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SetString stores a string preference.
func (p *Prefs) SetString(key string, val string) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Bool returns a bool preference, or fallback if not set.
func (p *Prefs) Bool(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// SetBool stores a bool preference.
func (p *Prefs) SetBool(key string, val bool) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Color returns a colour preference stored as hex, or fallback if unset or invalid.
func (p *Prefs) Color(key string, fallback color.Color) color.Color {
	s := p.String(key)
	if s == "" {
		return fallback
	}
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// SetColor stores a colour as hex.
func (p *Prefs) SetColor(key string, c color.Color) {
	p.SetString(key, colorutil.Hex(c))
}
