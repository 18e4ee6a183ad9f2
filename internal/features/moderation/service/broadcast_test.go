package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastExcludesSender(t *testing.T) {
	sender := newFakeSender()
	b := NewBroadcaster(sender)

	delivered := b.Broadcast(context.Background(), Payload{Text: "важное"}, []int64{1, 2, 99}, 99)
	assert.Equal(t, 2, delivered)
	require.Len(t, sender.messages, 2)
	for _, m := range sender.messages {
		assert.NotEqual(t, int64(99), m.chatID)
		assert.Equal(t, "важное", m.text)
	}
}

func TestBroadcastContinuesAfterFailure(t *testing.T) {
	sender := newFakeSender()
	sender.failChats[2] = true
	b := NewBroadcaster(sender)

	delivered := b.Broadcast(context.Background(), Payload{Text: "важное"}, []int64{1, 2, 3}, 99)
	assert.Equal(t, 2, delivered)
	require.Len(t, sender.messages, 2)
	assert.Equal(t, int64(1), sender.messages[0].chatID)
	assert.Equal(t, int64(3), sender.messages[1].chatID)
}

func TestBroadcastEmptyTextPlaceholder(t *testing.T) {
	sender := newFakeSender()
	b := NewBroadcaster(sender)

	b.Broadcast(context.Background(), Payload{}, []int64{1}, 99)
	assert.Equal(t, placeholderNoText, sender.lastMessage(t).text)
}

func TestBroadcastAttachment(t *testing.T) {
	sender := newFakeSender()
	b := NewBroadcaster(sender)

	payload := Payload{
		Text:       "подпись",
		Attachment: &Attachment{kind: attachmentPhoto, FileID: "p1"},
	}
	delivered := b.Broadcast(context.Background(), payload, []int64{1, 2}, 99)
	assert.Equal(t, 2, delivered)
	require.Len(t, sender.media, 2)
	assert.Equal(t, "photo", sender.media[0].kind)
	assert.Equal(t, "подпись", sender.media[0].caption)
	assert.Empty(t, sender.messages)
}
