package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	event := ModerationEvent{
		PromptID: "prompt_abc",
		Title:    "Greeting",
		AuthorID: "user_1",
	}

	data, err := NewEnvelope(EventPromptSubmitted, event).Encode()
	require.NoError(t, err)

	env, err := DecodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, EventPromptSubmitted, env.Type)

	decoded, err := DecodeBody[ModerationEvent](env)
	require.NoError(t, err)
	assert.Equal(t, "prompt_abc", decoded.PromptID)
	assert.Equal(t, "Greeting", decoded.Title)
	assert.Equal(t, "user_1", decoded.AuthorID)
	assert.Empty(t, decoded.ModeratorID)
}

func TestDecodeEnvelopeGarbage(t *testing.T) {
	_, err := DecodeEnvelope([]byte{0xff, 0x00, 0x01})
	assert.Error(t, err)
}
