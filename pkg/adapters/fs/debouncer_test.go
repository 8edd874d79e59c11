package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/slipbox/pkg/core"
)

func TestDebouncer(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	defer d.stop()

	assert.Nil(t, d.C(), "idle debouncer must not fire")

	d.add(core.Event{Type: core.EventCreate, Name: "a.md"})
	d.add(core.Event{Type: core.EventModify, Name: "b.md"})
	d.add(core.Event{Type: core.EventModify, Name: "a.md"})

	select {
	case <-d.C():
	case <-time.After(time.Second):
		t.Fatal("debouncer did not fire")
	}

	got := d.drain()
	require.Len(t, got, 2)
	assert.Equal(t, core.Event{Type: core.EventCreate, Name: "a.md"}, got[0])
	assert.Equal(t, core.Event{Type: core.EventModify, Name: "b.md"}, got[1])

	assert.Nil(t, d.C())
	assert.Empty(t, d.drain())
}
