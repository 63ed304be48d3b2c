package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&MessageThread{}, &ThreadParticipant{}, &Message{}))
	return db
}

func newTestService(t *testing.T) (Service, Repository, *gorm.DB) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	return NewService(repo, nil, nil), repo, db
}

func TestCreateThreadDeduplicatesCreator(t *testing.T) {
	svc, repo, _ := newTestService(t)

	// caller A also appears in the participant list
	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title: "About the apartment",
		Participants: []ParticipantInput{
			{UserID: 1, Role: "tenant"},
			{UserID: 2, Role: "landlord"},
		},
	})
	require.NoError(t, err)

	parts, err := repo.Participants(thread.ID)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	ids := map[uint]bool{}
	for _, p := range parts {
		ids[p.UserID] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[2])
}

func TestCreateThreadWithInitialMessage(t *testing.T) {
	svc, repo, _ := newTestService(t)

	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:          "Showing follow-up",
		ThreadType:     ThreadShowing,
		Participants:   []ParticipantInput{{UserID: 2, Role: "agent"}},
		InitialMessage: "Thanks for the tour!",
	})
	require.NoError(t, err)

	msgs, err := repo.MessagesForThread(thread.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, uint(1), msgs[0].SenderID)
	assert.Equal(t, "Thanks for the tour!", msgs[0].Content)
}

func TestCreateThreadRejectsBadType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:      "x",
		ThreadType: "gossip",
	})
	assert.ErrorIs(t, err, ErrBadThreadType)
}

func TestSendMessageRejectsBlankBeforeWrite(t *testing.T) {
	svc, _, db := newTestService(t)

	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:        "t",
		Participants: []ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := svc.SendMessage(1, thread.ID, content)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	var count int64
	db.Model(&Message{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	svc, _, _ := newTestService(t)

	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:        "t",
		Participants: []ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(99, thread.ID, "hello")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestFetchMessagesMarksOnlyUnread(t *testing.T) {
	svc, repo, _ := newTestService(t)

	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:        "t",
		Participants: []ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(1, thread.ID, "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(1, thread.ID, "second")
	require.NoError(t, err)

	// first fetch marks both of user 1's messages read for user 2
	affected, err := repo.MarkRead(thread.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	// second call targets only read_at IS NULL rows, so nothing changes
	affected, err = repo.MarkRead(thread.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	msgs, err := repo.MessagesForThread(thread.ID)
	require.NoError(t, err)
	for _, m := range msgs {
		assert.NotNil(t, m.ReadAt)
	}
}

func TestFetchMessagesDeniesOutsiders(t *testing.T) {
	svc, _, _ := newTestService(t)

	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:        "t",
		Participants: []ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	_, _, _, err = svc.FetchMessages(3, thread.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestThreadsForUserUnreadCount(t *testing.T) {
	svc, repo, _ := newTestService(t)

	thread, err := svc.CreateThread(1, "tenant", CreateThreadInput{
		Title:        "t",
		Participants: []ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(1, thread.ID, "ping")
	require.NoError(t, err)

	summaries, err := repo.ThreadsForUser(2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].UnreadCount)

	// sender sees no unread
	summaries, err = repo.ThreadsForUser(1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(0), summaries[0].UnreadCount)
}
