package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatList struct{ ids []int64 }

func (f *fakeChatList) ListChatIDs() ([]int64, error) { return f.ids, nil }

type fakeSender struct {
	texts  map[int64]string
	photos map[int64]string
	fail   map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{texts: map[int64]string{}, photos: map[int64]string{}, fail: map[int64]bool{}}
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	if f.fail[chatID] {
		return errors.New("blocked")
	}
	f.texts[chatID] = text
	return nil
}

func (f *fakeSender) SendPhoto(chatID int64, fileID, caption string) error {
	if f.fail[chatID] {
		return errors.New("blocked")
	}
	f.photos[chatID] = fileID
	return nil
}

type fakeStatRepo struct{ stats []BroadcastStat }

func (f *fakeStatRepo) Save(stat BroadcastStat) error { f.stats = append(f.stats, stat); return nil }
func (f *fakeStatRepo) ListRecent(n int) ([]BroadcastStat, error) {
	if n > len(f.stats) {
		n = len(f.stats)
	}
	return f.stats[len(f.stats)-n:], nil
}

func TestBroadcastTextFlow(t *testing.T) {
	sender := newFakeSender()
	sender.fail[3] = true
	stats := &fakeStatRepo{}
	u := NewBroadcastUsecase(&fakeChatList{ids: []int64{1, 2, 3}}, sender, stats)

	s := &BroadcastSession{}
	u.Start(s)
	assert.Equal(t, BStateEnter, s.State)

	_, _, err := u.ReceiveText(s, "   ")
	assert.Error(t, err)
	assert.Equal(t, BStateEnter, s.State)

	msg, opts, err := u.ReceiveText(s, "Festive offer on wall panels!")
	require.NoError(t, err)
	assert.Equal(t, BStateConfirm, s.State)
	assert.Equal(t, []string{BroadcastSendBtn, BroadcastCancelBtn}, opts)
	assert.NotEmpty(t, msg)

	out, err := u.ConfirmSend(s, BroadcastSendBtn)
	require.NoError(t, err)
	assert.Equal(t, "Broadcast finished: 2 sent, 1 failed.", out)
	assert.Equal(t, BStateIdle, s.State)
	assert.Equal(t, "Festive offer on wall panels!", sender.texts[1])

	require.Len(t, stats.stats, 1)
	assert.Equal(t, BroadcastStat{Total: 3, Sent: 2, Failed: 1}, BroadcastStat{
		Total: stats.stats[0].Total, Sent: stats.stats[0].Sent, Failed: stats.stats[0].Failed,
	})
}

func TestBroadcastCancel(t *testing.T) {
	u := NewBroadcastUsecase(&fakeChatList{}, newFakeSender(), &fakeStatRepo{})
	s := &BroadcastSession{}
	u.Start(s)
	_, _, _ = u.ReceiveText(s, "promo")

	out, err := u.ConfirmSend(s, BroadcastCancelBtn)
	require.NoError(t, err)
	assert.Equal(t, "Broadcast cancelled.", out)
	assert.Equal(t, BStateIdle, s.State)
	assert.Empty(t, s.Text)
}

func TestBroadcastPhotoFlow(t *testing.T) {
	sender := newFakeSender()
	u := NewBroadcastUsecase(&fakeChatList{ids: []int64{7}}, sender, &fakeStatRepo{})
	s := &BroadcastSession{}
	u.Start(s)

	_, opts := u.ReceivePhoto(s, "file-id-1", "New catalogue")
	assert.Equal(t, BStateConfirm, s.State)
	assert.NotEmpty(t, opts)

	_, err := u.ConfirmSend(s, BroadcastSendBtn)
	require.NoError(t, err)
	assert.Equal(t, "file-id-1", sender.photos[7])
}
