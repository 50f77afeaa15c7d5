package discord

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eights/internal/discord"
	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/session"
)

// HandleInteraction routes a slash command or component interaction
func (b *Bot) HandleInteraction(i *discordgo.InteractionCreate) {
	if !b.firstSeen(i.ID) {
		b.log.Debug("Skipping already processed interaction: %s", i.ID)
		return
	}

	user := interactionUser(i)
	if user == nil {
		b.log.Warn("Interaction %s has no user", i.ID)
		return
	}

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		b.log.Debug("Received application command: %s", name)
		switch name {
		case "eights":
			err = b.StartGame(i)
		case "eights-stats":
			err = b.statsCommand.Handle(b.session, i, user.ID)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		b.log.Debug("Received message component interaction: %s", customID)
		var handled bool
		if handled, err = b.statsCommand.HandleComponentInteraction(b.session, i, user.ID); !handled {
			err = b.handleGameComponent(i, user)
		}
	}

	if err != nil {
		b.log.Error("Error responding to interaction %s: %v", i.ID, err)
	}
}

// StartGame deals a new game for the interaction's user, replacing any game
// they had in progress
func (b *Bot) StartGame(i *discordgo.InteractionCreate) error {
	user := interactionUser(i)
	if user == nil {
		return types.NewGameError(types.ErrInvalidInput, "interaction has no user")
	}
	sess := b.sessions.Start(user.ID, displayName(user))
	b.log.Info("Started game %s for %s", sess.GameID(), user.ID)
	return discord.SendResponse(b.session, i, renderGame(sess.Snapshot(), ""))
}

func (b *Bot) handleGameComponent(i *discordgo.InteractionCreate, user *discordgo.User) error {
	data := i.MessageComponentData()
	if data.CustomID == newGameID {
		sess := b.sessions.Start(user.ID, displayName(user))
		return discord.UpdateResponse(b.session, i, renderGame(sess.Snapshot(), ""))
	}

	sess, err := b.sessions.Get(user.ID)
	if err != nil {
		return discord.SendErrorResponse(b.session, i, err)
	}

	ctx := context.Background()
	switch {
	case data.CustomID == stageSelectID:
		err = toggleStaged(sess, data.Values)
	case data.CustomID == playID:
		err = sess.Finish(ctx, entities.NoSuit)
	case strings.HasPrefix(data.CustomID, suitPrefix):
		err = sess.Finish(ctx, entities.Suit(strings.TrimPrefix(data.CustomID, suitPrefix)))
	case data.CustomID == drawID:
		_, err = sess.Draw(ctx)
	case data.CustomID == passID:
		err = sess.Pass(ctx)
	case data.CustomID == clearID:
		sess.ClearStaged()
	case data.CustomID == nextRoundID:
		err = sess.NextRound(ctx)
	default:
		b.log.Warn("Unknown component ID: %s", data.CustomID)
		return discord.SendErrorResponse(b.session, i, types.Errorf(types.ErrInvalidInput, "unknown action %q", data.CustomID))
	}

	notice := ""
	if err != nil {
		notice = discord.NewErrorResponse(err).Content
	}
	return discord.UpdateResponse(b.session, i, renderGame(sess.Snapshot(), notice))
}

// toggleStaged stages the picked card, or unstages it when already staged
func toggleStaged(sess *session.Session, values []string) error {
	if len(values) == 0 {
		return types.NewGameError(types.ErrInvalidIndex, "no card picked")
	}
	idx, err := strconv.Atoi(values[0])
	if err != nil {
		return types.Errorf(types.ErrInvalidIndex, "bad card %q", values[0])
	}
	for _, staged := range sess.Staged() {
		if staged == idx {
			return sess.Unstage(idx)
		}
	}
	return sess.Stage(idx)
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func displayName(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}
