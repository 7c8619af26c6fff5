// agenthooks: event hooks for AI agent hosts.
// Wire the subcommands into the host's hook configuration, e.g.
//
//	PreToolUse (Bash):  agenthooks log-command
//	Notification:       agenthooks notify
//	Stop:               agenthooks play-sound
package main

import "github.com/ppiankov/agenthooks/internal/cli"

func main() {
	cli.Execute()
}
