package messages

import (
	"strings"
	"unicode"
)

const (
	commandParts = 2
	addArgs      = 3
)

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	split := strings.SplitN(text, " ", commandParts)
	cmd = split[0]
	// telegram appends the bot name in group chats: /add@my_bot
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	if len(split) == commandParts {
		return cmd, split[1]
	}
	return cmd, ""
}

// splitArgs cuts at most n-1 whitespace separated words off arg, the last
// element keeps the remainder verbatim.
func splitArgs(arg string, n int) []string {
	res := make([]string, 0, n)
	rest := strings.TrimSpace(arg)
	for len(res) < n-1 && rest != "" {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			break
		}
		res = append(res, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	if rest != "" {
		res = append(res, rest)
	}
	return res
}
