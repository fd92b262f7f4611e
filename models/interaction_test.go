package models

import (
	"encoding/json"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPongResponse_OmitsData(t *testing.T) {
	b, err := json.Marshal(NewPongResponse())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":1}`, string(b))
}

func TestMessageResponse(t *testing.T) {
	b, err := json.Marshal(NewMessageResponse("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":4,"data":{"tts":false,"content":"hello"}}`, string(b))
}

func TestInteraction_Decode(t *testing.T) {
	body := `{"id":"1","application_id":"2","type":2,"guild_id":"3","channel_id":"4","token":"t","version":1,
		"data":{"id":"x","name":"pokedex","options":[{"name":"pokemon","value":"pikachu"}]}}`

	var i Interaction
	require.NoError(t, json.Unmarshal([]byte(body), &i))

	assert.Equal(t, discordgo.InteractionApplicationCommand, i.Type)
	require.NotNil(t, i.Data)
	assert.Equal(t, "pokedex", i.Data.Name)
	assert.Equal(t, []Choice{{Name: "pokemon", Value: "pikachu"}}, i.Data.Options)
	assert.Equal(t, 1, i.Version)
}
