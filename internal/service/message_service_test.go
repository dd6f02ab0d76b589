package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/realtime"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageToOfflineUserStillPersists(t *testing.T) {
	ctx := context.Background()
	hub := realtime.NewHub(nil, nil)
	messages := &fakeMessageRepo{}
	svc := NewMessageService(messages, testUsers(), hub)

	msg, err := svc.Send(ctx, 1, 2, "  are you patched?  ")
	require.NoError(t, err)
	assert.True(t, msg.IsOwnMessage)
	assert.Equal(t, "are you patched?", msg.Message)

	require.Len(t, messages.messages, 1)
	assert.False(t, messages.messages[0].IsRead)
}

func TestSendMessageAddressesReceiver(t *testing.T) {
	broker := &recordingBroker{}
	svc := NewMessageService(&fakeMessageRepo{}, testUsers(), broker)

	_, err := svc.Send(context.Background(), 1, 2, "hi")
	require.NoError(t, err)

	got := broker.byEvent(realtime.EventReceiveMessage)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].target)
	assert.False(t, got[0].payload.(*dto.MessageDTO).IsOwnMessage)
}

func TestSendMessageValidation(t *testing.T) {
	svc := NewMessageService(&fakeMessageRepo{}, testUsers(), &recordingBroker{})
	ctx := context.Background()

	_, err := svc.Send(ctx, 0, 2, "hi")
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = svc.Send(ctx, 1, 0, "hi")
	assert.ErrorIs(t, err, ErrMessageInvalid)
	_, err = svc.Send(ctx, 1, 2, "  ")
	assert.ErrorIs(t, err, ErrMessageInvalid)
	_, err = svc.Send(ctx, 1, 1, "hi")
	assert.ErrorIs(t, err, ErrMessageSelf)
	_, err = svc.Send(ctx, 1, 77, "hi")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMarkReadNotifiesOriginalSender(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	messages := &fakeMessageRepo{}
	svc := NewMessageService(messages, testUsers(), broker)
	_, err := svc.Send(ctx, 1, 2, "ping")
	require.NoError(t, err)
	broker.events = nil

	assert.ErrorIs(t, svc.MarkRead(ctx, 1, 1), ErrMessageNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, 2, 404), ErrMessageNotFound)
	assert.False(t, messages.messages[0].IsRead)
	assert.Empty(t, broker.events)

	require.NoError(t, svc.MarkRead(ctx, 2, 1))
	assert.True(t, messages.messages[0].IsRead)
	read := broker.byEvent(realtime.EventMessageRead)
	require.Len(t, read, 1)
	assert.Equal(t, "user", read[0].mode)
	assert.Equal(t, uint64(1), read[0].target)
	assert.Equal(t, &dto.MessageReadDTO{MessageID: 1}, read[0].payload)

	require.NoError(t, svc.MarkRead(ctx, 2, 1))
	assert.Len(t, broker.byEvent(realtime.EventMessageRead), 1)
}

func TestMarkReadFromNotifiesSender(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	messages := &fakeMessageRepo{}
	svc := NewMessageService(messages, testUsers(), broker)
	for _, body := range []string{"one", "two"} {
		_, err := svc.Send(ctx, 1, 2, body)
		require.NoError(t, err)
	}
	_, err := svc.Send(ctx, 2, 1, "reply")
	require.NoError(t, err)
	broker.events = nil

	res, err := svc.MarkReadFrom(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, &dto.MarkReadResultDTO{ReaderID: 2, Count: 2}, res)
	assert.False(t, messages.messages[2].IsRead)

	read := broker.byEvent(realtime.EventMessageRead)
	require.Len(t, read, 1)
	assert.Equal(t, uint64(1), read[0].target)

	res, err = svc.MarkReadFrom(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Count)
	assert.Len(t, broker.byEvent(realtime.EventMessageRead), 1)

	_, err = svc.MarkReadFrom(ctx, 2, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}
