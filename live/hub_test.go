package live

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSnapshot(t *testing.T) {
	h := NewHub(nil)
	h.Register("posts", func(ctx context.Context) (interface{}, error) {
		return []string{"a", "b"}, nil
	})

	assert.True(t, h.Known("posts"))
	assert.False(t, h.Known("unknown"))

	data, err := h.Snapshot(context.Background(), "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, data)
}

func TestHubNotifyReachesSubscribers(t *testing.T) {
	h := NewHub(nil)
	h.Register("posts", func(ctx context.Context) (interface{}, error) { return nil, nil })

	sub := h.Subscribe("posts")
	defer sub.Cancel()

	h.Notify("posts")

	select {
	case <-sub.C:
	default:
		t.Fatal("expected a pending signal")
	}
}

func TestHubNotifyCoalesces(t *testing.T) {
	h := NewHub(nil)
	sub := h.Subscribe("posts")
	defer sub.Cancel()

	// undrained signals collapse into one
	h.Notify("posts")
	h.Notify("posts")
	h.Notify("posts")

	<-sub.C
	select {
	case <-sub.C:
		t.Fatal("signals should have coalesced")
	default:
	}
}

func TestHubCancelDetaches(t *testing.T) {
	h := NewHub(nil)
	sub := h.Subscribe("posts")
	sub.Cancel()
	sub.Cancel() // idempotent

	h.Notify("posts")
	select {
	case <-sub.C:
		t.Fatal("cancelled subscription must not receive signals")
	default:
	}
}

func TestHubNotifyUnknownCollection(t *testing.T) {
	h := NewHub(nil)
	// no subscribers, no registration: must not panic
	h.Notify("nothing")
}
