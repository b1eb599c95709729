package family

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"familytree/internal/domain/event"
	"familytree/internal/render"
	"familytree/internal/repository"
	familyUC "familytree/internal/usecase/family"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestHub_MutationRightAfterSnapshotIsDelivered(t *testing.T) {
	log := zap.NewNop().Sugar()
	uc := familyUC.NewFamilyUseCase(log, repository.NewMemoryJournal())

	// a command lands the moment the new client has its snapshot
	hub := NewHub(log, func(fn func(v *render.View)) {
		uc.WithSnapshot(fn)
		uc.Execute(context.Background(), "root Alice")
	})
	uc.Subscribe(hub)

	conn := dialHub(t, hub)

	var initial event.TreeEvent
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Nil(t, initial.Tree)

	var redraw event.TreeEvent
	require.NoError(t, conn.ReadJSON(&redraw))
	require.NotNil(t, redraw.Tree)
	assert.Equal(t, "Alice", redraw.Tree.Value)
	assert.Equal(t, 1, uc.Size())
}

func TestHub_ClientThatNeverReadsDoesNotStallCommands(t *testing.T) {
	log := zap.NewNop().Sugar()
	uc := familyUC.NewFamilyUseCase(log, repository.NewMemoryJournal())
	hub := NewHub(log, uc.WithSnapshot)
	uc.Subscribe(hub)

	// connected but never reading
	dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	start := time.Now()
	uc.Execute(context.Background(), "root p0")
	for i := 1; i < 500; i++ {
		res := uc.Execute(context.Background(), fmt.Sprintf("left p%d p%d", i-1, i))
		require.True(t, res.Applied)
	}

	assert.Less(t, time.Since(start), writeWait)
	assert.Equal(t, 500, uc.Size())
}

func TestHub_FullBufferDropsClient(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar(), func(fn func(v *render.View)) { fn(nil) })
	slow := &client{send: make(chan event.TreeEvent, 1)}
	slow.send <- event.TreeEvent{}
	hub.register(slow)

	done := make(chan struct{})
	go func() {
		_ = hub.PublishTreeChanged(context.Background(), event.TreeEvent{Size: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full client buffer")
	}
	assert.Equal(t, 0, hub.Clients())

	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}
