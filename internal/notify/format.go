package notify

import (
	"fmt"
	"strings"
)

// pangoEscaper escapes text for notification servers that render body markup.
var pangoEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// appleScriptEscaper escapes text for an AppleScript string literal.
var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Command builds the utility invocation for backend.
func Command(backend, appName string, m Message) (string, []string, error) {
	switch backend {
	case BackendNotifySend:
		return formatNotifySend(appName, m)
	case BackendOsascript:
		return formatOsascript(m)
	default:
		return "", nil, fmt.Errorf("notify: unknown backend %q", backend)
	}
}

func formatNotifySend(appName string, m Message) (string, []string, error) {
	args := []string{}
	if appName != "" {
		args = append(args, "--app-name", appName)
	}
	// Only the body is rendered as markup; the summary is shown verbatim.
	args = append(args, m.Title, pangoEscaper.Replace(m.Message))
	return BackendNotifySend, args, nil
}

func formatOsascript(m Message) (string, []string, error) {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		appleScriptEscaper.Replace(m.Message),
		appleScriptEscaper.Replace(m.Title))
	return BackendOsascript, []string{"-e", script}, nil
}
