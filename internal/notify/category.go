package notify

// DefaultMessage is shown for any category without an entry.
var DefaultMessage = Message{
	Title:   "Agent Activity",
	Message: "Your agent needs attention",
}

// builtinCategories maps a tool name to its notification.
var builtinCategories = map[string]Message{
	"Bash":      {Title: "Running Command", Message: "Agent is executing a shell command"},
	"Edit":      {Title: "File Edited", Message: "Agent modified a file"},
	"MultiEdit": {Title: "Files Edited", Message: "Agent made several edits to a file"},
	"Write":     {Title: "File Written", Message: "Agent wrote a file"},
	"Read":      {Title: "Reading File", Message: "Agent is reading a file"},
	"WebFetch":  {Title: "Fetching URL", Message: "Agent is fetching a web page"},
	"WebSearch": {Title: "Searching Web", Message: "Agent is searching the web"},
	"Task":      {Title: "Subagent Started", Message: "Agent launched a subagent task"},
}

// Table resolves a category to its notification.
type Table struct {
	fallback   Message
	categories map[string]Message
}

// NewTable merges overrides over the built-in categories. A zero fallback
// keeps DefaultMessage.
func NewTable(fallback Message, overrides map[string]Message) *Table {
	if fallback.Title == "" && fallback.Message == "" {
		fallback = DefaultMessage
	}
	categories := make(map[string]Message, len(builtinCategories)+len(overrides))
	for k, v := range builtinCategories {
		categories[k] = v
	}
	for k, v := range overrides {
		categories[k] = v
	}
	return &Table{fallback: fallback, categories: categories}
}

// Resolve returns the notification for category. Unknown categories get the
// fallback pair. hostMessage replaces the fallback body only when no
// category was given at all (host-originated notifications carry no tool).
func (t *Table) Resolve(category, hostMessage string) Message {
	if m, ok := t.categories[category]; ok {
		return m
	}
	if category == "" && hostMessage != "" {
		return Message{Title: t.fallback.Title, Message: hostMessage}
	}
	return t.fallback
}
