package models

import "github.com/bwmarrin/discordgo"

// Choice struct is a name/value pair supplied by the user for a command option
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Interaction struct is the subset of a Discord interaction callback this bot reads
type Interaction struct {
	ID            string                    `json:"id,omitempty"`
	ApplicationID string                    `json:"application_id,omitempty"`
	Type          discordgo.InteractionType `json:"type"`
	Data          *InteractionData          `json:"data,omitempty"`
	GuildID       string                    `json:"guild_id,omitempty"`
	ChannelID     string                    `json:"channel_id,omitempty"`
	Token         string                    `json:"token,omitempty"`
	Version       int                       `json:"version,omitempty"`
}

// InteractionData struct
type InteractionData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Options       []Choice `json:"options"`
	CustomID      string   `json:"custom_id,omitempty"`
	ComponentType int      `json:"component_type,omitempty"`
}

// Response struct is the reply to an interaction callback
type Response struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data *DataResponse                     `json:"data,omitempty"`
}

// DataResponse struct
type DataResponse struct {
	TTS     bool   `json:"tts"`
	Content string `json:"content"`
}

// NewPongResponse answers a ping interaction
func NewPongResponse() *Response {
	return &Response{
		Type: discordgo.InteractionResponsePong,
	}
}

// NewMessageResponse answers a command interaction with a channel message
func NewMessageResponse(content string) *Response {
	return &Response{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &DataResponse{
			TTS:     false,
			Content: content,
		},
	}
}
