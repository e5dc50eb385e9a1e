package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// SlackBot answers weather questions over Socket Mode: slash commands, app
// mentions and direct messages.
type SlackBot struct {
	api       *slack.Client
	client    *socketmode.Client
	processor models.QueryProcessor
	botUserID string
}

func NewSlackBot(cfg *config.SlackConfig, processor models.QueryProcessor) *SlackBot {
	api := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))
	return &SlackBot{
		api:       api,
		client:    socketmode.New(api),
		processor: processor,
	}
}

// Run blocks until ctx is cancelled or the connection fails.
func (b *SlackBot) Run(ctx context.Context) error {
	auth, err := b.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth failed: %w", err)
	}
	b.botUserID = auth.UserID

	go func() {
		for evt := range b.client.Events {
			switch evt.Type {
			case socketmode.EventTypeSlashCommand:
				b.client.Ack(*evt.Request)
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					continue
				}
				log.Printf("Slash command received: %s from user=%s channel=%s", cmd.Command, cmd.UserID, cmd.ChannelID)
				go b.handleSlashCommand(ctx, cmd)
			case socketmode.EventTypeEventsAPI:
				b.client.Ack(*evt.Request)
				event, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				go b.handleEventsAPI(ctx, event)
			}
		}
	}()

	log.Printf("✓ Slack bot connected via Socket Mode as %s", auth.User)
	return b.client.RunContext(ctx)
}

func (b *SlackBot) handleSlashCommand(ctx context.Context, cmd slack.SlashCommand) {
	text, public := b.replyToCommand(ctx, cmd)
	if public {
		b.post(cmd.ChannelID, "", text)
		return
	}
	if _, err := b.api.PostEphemeral(cmd.ChannelID, cmd.UserID, slack.MsgOptionText(text, false)); err != nil {
		log.Printf("Error posting ephemeral: %v", err)
	}
}

// replyToCommand returns the answer text and whether the whole channel
// should see it.
func (b *SlackBot) replyToCommand(ctx context.Context, cmd slack.SlashCommand) (string, bool) {
	switch cmd.Command {
	case "/start":
		return welcomeMessage(cmd.UserID), false
	case "/ayuda":
		return helpMessage, false
	case "/clima":
		question := strings.TrimSpace(cmd.Text)
		if question == "" {
			return usageMessage, false
		}
		return b.answer(ctx, question), true
	default:
		return helpMessage, false
	}
}

func (b *SlackBot) handleEventsAPI(ctx context.Context, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		return
	}
	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		question := stripMention(ev.Text)
		if question == "" {
			b.post(ev.Channel, threadOf(ev.ThreadTimeStamp, ev.TimeStamp), welcomeMessage(ev.User))
			return
		}
		b.post(ev.Channel, threadOf(ev.ThreadTimeStamp, ev.TimeStamp), b.answer(ctx, question))
	case *slackevents.MessageEvent:
		if !isDirectQuestion(ev, b.botUserID) {
			return
		}
		b.post(ev.Channel, "", b.answer(ctx, stripMention(ev.Text)))
	}
}

// isDirectQuestion accepts plain user messages in a direct conversation.
// Bot echoes, edits and other subtypes are ignored.
func isDirectQuestion(ev *slackevents.MessageEvent, botUserID string) bool {
	if ev.ChannelType != "im" {
		return false
	}
	if ev.BotID != "" || ev.SubType != "" {
		return false
	}
	if ev.User == "" || ev.User == botUserID {
		return false
	}
	return strings.TrimSpace(ev.Text) != ""
}

func threadOf(threadTS, ts string) string {
	if threadTS != "" {
		return threadTS
	}
	return ts
}

// answer runs the pipeline and converts a panic or empty answer into the
// chat error message.
func (b *SlackBot) answer(ctx context.Context, question string) (reply string) {
	requestID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Request %s panicked: %v", requestID, r)
			reply = errorMessage
		}
	}()

	reply = b.processor.Process(ctx, question)
	if strings.TrimSpace(reply) == "" {
		log.Printf("Request %s produced an empty answer", requestID)
		return errorMessage
	}
	return reply
}

func (b *SlackBot) post(channelID, threadTS, text string) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	if _, _, err := b.api.PostMessage(channelID, opts...); err != nil {
		log.Printf("Error posting message channel=%s: %v", channelID, err)
	}
}
