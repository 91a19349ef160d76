package chat

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turn(role Role, content string, at time.Time) Turn {
	return Turn{Role: role, Content: content, CreatedAt: at}
}

func TestStore_GetOrCreate(t *testing.T) {
	st := NewStore()

	sess := st.GetOrCreate("s1")
	assert.Equal(t, "s1", sess.ID)
	assert.True(t, sess.IsEmpty())
	assert.Equal(t, 1, st.Len())

	// idempotent
	_ = st.GetOrCreate("s1")
	assert.Equal(t, 1, st.Len())
}

func TestStore_Append(t *testing.T) {
	st := NewStore()
	now := time.Now().UTC()

	first := st.Append("s1", turn(RoleUser, "hi", now))
	require.Len(t, first.Turns, 1)
	assert.Equal(t, now, first.CreatedAt)

	second := st.Append("s1", turn(RoleAssistant, "hello", now.Add(time.Second)))
	require.Len(t, second.Turns, 2)
	assert.Len(t, first.Turns, 1, "earlier copies are not affected by later appends")

	second.Turns[0].Content = "mutated"
	sess, ok := st.Get("s1")
	require.True(t, ok)
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, RoleUser, sess.Turns[0].Role)
	assert.Equal(t, "hi", sess.Turns[0].Content)
	assert.Equal(t, RoleAssistant, sess.Turns[1].Role)
	assert.Equal(t, now, sess.CreatedAt)
}

func TestStore_snapshotsDoNotAlias(t *testing.T) {
	st := NewStore()
	st.Append("s1", turn(RoleUser, "hi", time.Now()))

	sess := st.GetOrCreate("s1")
	sess.Turns[0].Content = "mutated"
	sess.Turns = append(sess.Turns, turn(RoleAssistant, "extra", time.Now()))

	fresh, _ := st.Get("s1")
	require.Len(t, fresh.Turns, 1)
	assert.Equal(t, "hi", fresh.Turns[0].Content)
}

func TestStore_Clear(t *testing.T) {
	st := NewStore()
	st.Append("s1", turn(RoleUser, "hi", time.Now()))

	st.Clear("s1")
	_, ok := st.Get("s1")
	assert.False(t, ok)

	// clearing twice or clearing an unknown session is fine
	st.Clear("s1")
	st.Clear("unknown")
	assert.Equal(t, 0, st.Len())

	// the next message starts from scratch
	assert.True(t, st.GetOrCreate("s1").IsEmpty())
	sess := st.Append("s1", turn(RoleUser, "again", time.Now()))
	require.Len(t, sess.Turns, 1)
	assert.Equal(t, "again", sess.Turns[0].Content)
}

func TestStore_SweepExpired(t *testing.T) {
	maxAge := 24 * time.Hour
	now := time.Now().UTC()

	st := NewStore()
	st.Append("fresh", turn(RoleUser, "hi", now.Add(-time.Hour)))
	st.Append("old", turn(RoleUser, "hi", now.Add(-25*time.Hour)))
	st.Append("old", turn(RoleAssistant, "recent reply", now.Add(-time.Minute)))
	st.Append("edge", turn(RoleUser, "hi", now.Add(-maxAge)))
	_ = st.GetOrCreate("empty")

	removed := st.SweepExpired(maxAge, now)

	assert.Equal(t, 2, removed)
	_, ok := st.Get("fresh")
	assert.True(t, ok)
	_, ok = st.Get("edge")
	assert.True(t, ok, "a session exactly maxAge old is kept")
	_, ok = st.Get("old")
	assert.False(t, ok, "age is measured from the first turn")
	_, ok = st.Get("empty")
	assert.False(t, ok)
}

func TestStore_concurrentAppends(t *testing.T) {
	st := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%5)
			st.Append(id, turn(RoleUser, "hi", time.Now()))
			_ = st.GetOrCreate(id)
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		st.SweepExpired(time.Hour, time.Now())
	}()
	wg.Wait()

	var total int
	for i := 0; i < 5; i++ {
		sess, ok := st.Get(fmt.Sprintf("s%d", i))
		require.True(t, ok)
		total += len(sess.Turns)
	}
	assert.Equal(t, 50, total)
}
