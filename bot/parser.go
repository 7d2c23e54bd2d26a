package bot

import (
	"fmt"
	"strings"
)

// parsedCommand is the structured form of one inbound command: the subject
// user followed by whatever keywords were left after the filler words.
type parsedCommand struct {
	user     string
	keywords []string
}

// parseError is a user-facing parse failure. It is never fatal; the
// dispatcher sends the message straight back as the reply.
type parseError string

func (e parseError) Error() string {
	return string(e)
}

// parseCommand tokenizes a command body into a subject user and trailing
// keywords. Each filler word must appear verbatim immediately after the
// user token. Trailing question marks are noise, so "... played?" and
// "... played??" parse identically.
func parseCommand(body string, fillers ...string) (parsedCommand, error) {
	body = strings.TrimSpace(body)
	for strings.HasSuffix(body, "?") {
		body = strings.TrimSpace(strings.TrimSuffix(body, "?"))
	}
	tokens := strings.Fields(strings.ToLower(body))
	if len(tokens) == 0 {
		return parsedCommand{}, parseError("I couldn't work out what user you were talking about.")
	}
	cmd := parsedCommand{user: tokens[0]}
	tokens = tokens[1:]
	for _, filler := range fillers {
		if len(tokens) == 0 || !strings.EqualFold(tokens[0], filler) {
			got := "(nothing)"
			if len(tokens) > 0 {
				got = tokens[0]
			}
			return parsedCommand{}, parseError(fmt.Sprintf("I expected %q but got %q.", filler, got))
		}
		tokens = tokens[1:]
	}
	cmd.keywords = tokens
	return cmd, nil
}
