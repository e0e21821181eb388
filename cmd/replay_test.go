package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sess "github.com/abhisek/promptcraft/internal/chat"
	"github.com/abhisek/promptcraft/internal/config"
	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/script"
)

func TestReplaySession_DefaultPicks(t *testing.T) {
	sc := script.Default()

	state, err := replaySession(context.Background(), sc, replayInput{Idea: "a street car"},
		sess.WithDelays(sess.InstantDelays()))
	require.NoError(t, err)

	assert.Equal(t, conversation.PhaseComplete, state.Phase)
	assert.Equal(t, "a street car", state.UserIdea)
	for _, st := range sc.Steps() {
		assert.Equal(t, st.Choices[0].Display(), state.Selections[st.ID], st.ID)
	}
}

func TestReplaySession_LettersAndFreeText(t *testing.T) {
	sc := script.Default()
	steps := sc.Steps()

	state, err := replaySession(context.Background(), sc, replayInput{
		Idea:     "a street car",
		Picks:    []string{"b", "my own mood"},
		Feedback: "make it rain",
	}, sess.WithDelays(sess.InstantDelays()))
	require.NoError(t, err)

	assert.Equal(t, steps[0].Choices[1].Display(), state.Selections[steps[0].ID])
	assert.Equal(t, "my own mood", state.Selections[steps[1].ID])

	last := state.Messages[len(state.Messages)-1]
	assert.Equal(t, conversation.SenderUser, last.Sender)
	assert.Equal(t, "make it rain", last.Content)
}

func TestReplaySession_EmptyIdea(t *testing.T) {
	_, err := replaySession(context.Background(), script.Default(), replayInput{Idea: "  "},
		sess.WithDelays(sess.InstantDelays()))
	require.ErrorIs(t, err, conversation.ErrEmptyInput)
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	listen := printMessages(&buf, script.Default())

	listen(sess.Event{Kind: sess.EventTyping, Typing: true})
	assert.Empty(t, buf.String())

	listen(sess.Event{Kind: sess.EventMessage, Message: conversation.Message{
		Type: conversation.TypeText, Sender: conversation.SenderAI, Content: "Hello",
	}})
	assert.Equal(t, "Assistant: Hello\n\n", buf.String())
}

func TestDeliveryDelays(t *testing.T) {
	dc := config.DefaultConfig().Delivery

	d, err := deliveryDelays(dc)
	require.NoError(t, err)
	assert.Equal(t, dc.Long, d.Long)
	assert.Equal(t, sess.ProfileLong, d.Sentinels[sess.GenerationSentinel])

	dc.Instant = true
	d, err = deliveryDelays(dc)
	require.NoError(t, err)
	assert.Zero(t, d.Short+d.Medium+d.Jitter+d.Long)
	assert.Len(t, d.Sentinels, 1)

	dc.Sentinels = append(dc.Sentinels, config.SentinelConfig{Content: "x", Profile: "forever"})
	_, err = deliveryDelays(dc)
	assert.Error(t, err)
}
