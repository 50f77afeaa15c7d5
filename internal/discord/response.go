package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eights/internal/types"
)

// ResponseEmoji maps error codes to appropriate emojis
var ResponseEmoji = map[types.ErrorCode]string{
	types.ErrRoundOver:       "🏁",
	types.ErrGameOver:        "🏆",
	types.ErrRoundInProgress: "🎮",
	types.ErrSessionNotFound: "🔍",
	types.ErrNotPlayerTurn:   "⏳",
	types.ErrInvalidIndex:    "❓",
	types.ErrMixedRanks:      "🔀",
	types.ErrIllegalPlay:     "🚫",
	types.ErrSixObligation:   "6️⃣",
	types.ErrTurnComplete:    "✋",
	types.ErrSuitRequired:    "🎨",
	types.ErrNothingStaged:   "🫙",
	types.ErrPlayRequired:    "👉",
	types.ErrDrawUsed:        "🃏",
	types.ErrMustDraw:        "📥",
	types.ErrDeckEmpty:       "📭",
	types.ErrInvalidInput:    "❗",
	types.ErrInternalError:   "💥",
	types.ErrDatabaseError:   "💾",
}

// Response represents a Discord interaction response
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// NewResponse creates a new Response
func NewResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  false,
	}
}

// NewEphemeralResponse creates a new ephemeral Response (only visible to the user)
func NewEphemeralResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  true,
	}
}

// NewErrorResponse creates a new error Response
func NewErrorResponse(err error) *Response {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		emoji := ResponseEmoji[gameErr.Code]
		if emoji == "" {
			emoji = "❌"
		}
		return NewEphemeralResponse(fmt.Sprintf("%s %s", emoji, gameErr.Message), nil)
	}
	return NewEphemeralResponse(fmt.Sprintf("❌ An error occurred: %v", err), nil)
}

// WithEmbeds attaches embeds to the response
func (r *Response) WithEmbeds(embeds ...*discordgo.MessageEmbed) *Response {
	r.Embeds = append(r.Embeds, embeds...)
	return r
}

// SendResponse sends a response to a Discord interaction
func SendResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(r),
	})
}

// UpdateResponse replaces the message the interaction came from
func UpdateResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(r),
	})
}

// SendGameResponse sends a game view only the player can see
func SendGameResponse(s SessionHandler, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return SendResponse(s, i, NewEphemeralResponse(content, components))
}

// UpdateGameResponse updates a game response
func UpdateGameResponse(s SessionHandler, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return UpdateResponse(s, i, NewEphemeralResponse(content, components))
}

// SendErrorResponse sends an error response
func SendErrorResponse(s SessionHandler, i *discordgo.InteractionCreate, err error) error {
	return SendResponse(s, i, NewErrorResponse(err))
}

// Helper functions

func responseData(r *Response) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
		Flags:      getFlags(r.Ephemeral),
	}
}

func getFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
