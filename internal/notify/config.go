package notify

import "time"

// Backend names accepted in Config.Backend.
const (
	BackendAuto       = "auto"
	BackendNotifySend = "notify-send"
	BackendOsascript  = "osascript"
	BackendNone       = "none"
)

// Message is a notification title/body pair.
type Message struct {
	Title   string `yaml:"title"   json:"title"`
	Message string `yaml:"message" json:"message"`
}

// Config selects the notifier backend and the category table.
// Categories are merged over the built-in table; Default replaces the fallback pair.
type Config struct {
	Backend    string             `yaml:"backend"    json:"backend"` // "auto", "notify-send", "osascript", "none"
	Timeout    time.Duration      `yaml:"timeout"    json:"timeout"`
	AppName    string             `yaml:"app_name"   json:"app_name"`
	Default    Message            `yaml:"default"    json:"default"`
	Categories map[string]Message `yaml:"categories" json:"categories"`
}

// DefaultConfig returns the built-in notifier settings.
func DefaultConfig() Config {
	return Config{
		Backend: BackendAuto,
		Timeout: 5 * time.Second,
		AppName: "agenthooks",
		Default: DefaultMessage,
	}
}
