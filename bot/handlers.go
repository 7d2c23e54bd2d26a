package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/leighmacdonald/steamtech/steam"
)

// cannedRecentGames short-circuits the Steam lookup entirely for a handful
// of users. Kept as a table so the joke stays in one place.
var cannedRecentGames = map[string][]steam.GameRecord{
	// ;)
	"ratstool": {{Name: "PLAYERUNKNOWN'S BATTLEGROUNDS", Playtime2Weeks: 20160}},
}

// onActivity answers "what games does <user> play". The only keyword the
// bot understands is "play"; anything else gets a gentle shrug in prose.
func (b *Bot) onActivity(ctx context.Context, body string) (string, error) {
	cmd, err := parseCommand(body)
	if err != nil {
		return "", err
	}
	if len(cmd.keywords) == 0 {
		return "", parseError(fmt.Sprintf("I couldn't work out what you're asking me about %s.", cmd.user))
	}
	keyword := cmd.keywords[0]
	if keyword != "play" {
		return fmt.Sprintf("I don't know what %s means, but you appear to be referring to %s.", keyword, cmd.user), nil
	}
	games, err := b.recentGames(ctx, cmd.user)
	if err != nil {
		return "", err
	}
	if len(games) == 0 {
		return codeBlock(fmt.Sprintf("%s hasn't played any Steam games in the past 2 weeks", cmd.user)), nil
	}
	return codeBlock(renderRecentGames(games)), nil
}

func (b *Bot) recentGames(ctx context.Context, user string) ([]steam.GameRecord, error) {
	if games, found := cannedRecentGames[user]; found {
		return games, nil
	}
	sid, err := b.queries.ResolveUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return b.queries.RecentGames(ctx, sid)
}

func renderRecentGames(games []steam.GameRecord) string {
	longest := 0
	for _, game := range games {
		if n := len(displayName(game)); n > longest {
			longest = n
		}
	}
	lines := make([]string, 0, len(games))
	for _, game := range games {
		name := displayName(game)
		suffix := "minute"
		if game.Playtime2Weeks > 1 {
			suffix = "minutes"
		}
		lines = append(lines, fmt.Sprintf("%s%s (%d %s in the last 2 weeks)",
			name, strings.Repeat(" ", longest-len(name)), game.Playtime2Weeks, suffix))
	}
	return strings.Join(lines, "\n")
}

func displayName(game steam.GameRecord) string {
	if game.Name != "" {
		return game.Name
	}
	return fmt.Sprintf("Steam AppID %d", game.AppID)
}

// onSummary answers "tell me about <user>". The whole remainder of the
// message is the user.
func (b *Bot) onSummary(ctx context.Context, body string) (string, error) {
	user := strings.ToLower(strings.TrimSpace(body))
	if user == "" {
		return "", parseError("I couldn't work out what user you were talking about.")
	}
	sid, err := b.queries.ResolveUser(ctx, user)
	if err != nil {
		return "", err
	}
	summary, err := b.queries.Summary(ctx, sid)
	if err != nil {
		return "", err
	}
	return renderSummary(user, summary), nil
}

func renderSummary(user string, summary steam.PlayerSummary) string {
	private := "No"
	if summary.Private() {
		private = "Yes"
	}
	lines := []string{
		"Profile:      " + summary.ProfileURL,
		"Username:     " + user,
		"Nickname:     " + summary.PersonaName,
		"SteamID:      " + summary.SteamID,
		"Private:      " + private,
	}
	if summary.RealName != "" {
		lines = append(lines, "Real name:    "+summary.RealName)
	}
	if summary.GameExtraInfo != "" {
		lines = append(lines, "Current game: "+summary.GameExtraInfo)
	}
	return codeBlock("\n" + strings.Join(lines, "\n"))
}

// onPlaytime answers "how much time has <user> wasted on <game>". The game
// name is looked up in the full public catalog, then the matching appid is
// joined against the user's owned games.
func (b *Bot) onPlaytime(ctx context.Context, body string) (string, error) {
	cmd, err := parseCommand(body, "wasted", "on")
	if err != nil {
		return "", err
	}
	if len(cmd.keywords) == 0 {
		return "", parseError(fmt.Sprintf("I couldn't work out what you're asking me about %s.", cmd.user))
	}
	gameName := strings.Join(cmd.keywords, " ")
	catalog, err := b.queries.FullCatalog(ctx)
	if err != nil {
		return "", err
	}
	entry, errFind := steam.GameNamed(catalog, gameName)
	if errFind != nil {
		return fmt.Sprintf("I couldn't find a game called %s on Steam.", gameName), nil
	}
	sid, err := b.queries.ResolveUser(ctx, cmd.user)
	if err != nil {
		return "", err
	}
	owned, err := b.queries.OwnedGames(ctx, sid)
	if err != nil {
		return "", err
	}
	game, errOwned := steam.GameByAppID(owned, entry.AppID)
	if errOwned != nil {
		return fmt.Sprintf("%s doesn't own %s.", cmd.user, gameName), nil
	}
	hours := game.PlaytimeForever / 60
	minutes := game.PlaytimeForever % 60
	return codeBlock(fmt.Sprintf("%d hours(s), %d minute(s)", hours, minutes)), nil
}
