package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/leighmacdonald/steamtech/steam"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	prefixHook = "steamtech ..."

	// Command phrases, checked longest first.
	prefixPlaytime = "how much time has "
	prefixActivity = "what games does "
	prefixSummary  = "tell me about "

	replyEmpty     = "Yes?"
	replySelf      = "Talking to yourself is the first sign of madness."
	replyUnknown   = `¯\_(ツ)_/¯`
	replySteamDown = "Something went wrong talking to Steam. Try again in a bit."
)

type handlerFunc func(ctx context.Context, body string) (string, error)

// Bot routes inbound chat messages beginning with the activation hook to
// the matching query handler and sends the reply back on the same channel.
// It holds no state beyond the query service.
type Bot struct {
	queries *steam.QueryService
}

func New(queries *steam.QueryService) *Bot {
	return &Bot{queries: queries}
}

// Start connects to Discord and blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return errors.Wrap(err, "Failed to create discord session")
	}
	dg.AddHandler(onConnect)
	dg.AddHandler(onDisconnect)
	dg.AddHandler(b.onMessageCreate)

	// We only care about receiving message events.
	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuildMessages)

	if err := dg.Open(); err != nil {
		return errors.Wrap(err, "Failed to open discord connection")
	}
	defer func() {
		if errClose := dg.Close(); errClose != nil {
			log.Errorf("Failed to cleanly shutdown discord: %v", errClose)
		}
	}()
	log.Infof("Bot is now running. Press CTRL-C to exit.")
	<-ctx.Done()
	return nil
}

func onConnect(_ *discordgo.Session, _ *discordgo.Connect) {
	log.Info("Connected to session ws API")
}

func onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	log.Info("Disconnected from session ws API")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	fromSelf := s.State.User != nil && m.Author != nil && m.Author.ID == s.State.User.ID
	reply := b.Respond(context.Background(), m.Content, fromSelf)
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		log.Errorf("Failed to send reply: %v", err)
	}
}

// Respond produces the reply for one inbound message, or "" when the
// message doesn't carry the activation hook. fromSelf guards against the
// bot answering its own messages forever, just in case a reply somehow
// loops back in.
func (b *Bot) Respond(ctx context.Context, content string, fromSelf bool) string {
	if !strings.HasPrefix(strings.ToLower(content), prefixHook) {
		return ""
	}
	if fromSelf {
		return replySelf
	}
	body := strings.TrimSpace(content[len(prefixHook):])
	if body == "" {
		return replyEmpty
	}
	lower := strings.ToLower(body)
	switch {
	case strings.HasPrefix(lower, prefixPlaytime):
		return b.reply(ctx, body[len(prefixPlaytime):], b.onPlaytime)
	case strings.HasPrefix(lower, prefixActivity):
		return b.reply(ctx, body[len(prefixActivity):], b.onActivity)
	case strings.HasPrefix(lower, prefixSummary):
		return b.reply(ctx, body[len(prefixSummary):], b.onSummary)
	}
	return replyUnknown
}

// reply runs a handler and converts every failure into a reply. Parse
// failures go back to the user verbatim; anything from the Steam side is
// logged and collapsed into a generic apology so a flaky API can never
// take the message loop down with it.
func (b *Bot) reply(ctx context.Context, body string, handler handlerFunc) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Handler panic: %v", r)
			out = replySteamDown
		}
	}()
	text, err := handler(ctx, body)
	if err == nil {
		return text
	}
	var perr parseError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	log.Errorf("Steam query failed: %v", err)
	return replySteamDown
}

// codeBlock wraps a reply in a monospace block.
func codeBlock(text string) string {
	return "```" + text + "```"
}
