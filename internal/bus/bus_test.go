package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-discounting/internal/bus"
)

type payload struct {
	Seq  int      `json:"seq"`
	Tags []string `json:"tags"`
}

func TestPublishDeliversInSubscribeOrder(t *testing.T) {
	b := bus.New()
	var order []string

	b.Subscribe("tick", func(bus.Event) { order = append(order, "first") })
	b.Subscribe("tick", func(bus.Event) { order = append(order, "second") })

	b.Publish("tick", payload{Seq: 1})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSameNamePreservesPublishOrder(t *testing.T) {
	b := bus.New()
	var seqs []int

	b.Subscribe("tick", func(e bus.Event) {
		var p payload
		require.NoError(t, e.Decode(&p))
		seqs = append(seqs, p.Seq)
	})

	for i := 1; i <= 5; i++ {
		b.Publish("tick", payload{Seq: i})
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seqs)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := bus.New()
	calls := 0

	unsub := b.Subscribe("tick", func(bus.Event) { calls++ })
	b.Publish("tick", payload{Seq: 1})
	unsub()
	b.Publish("tick", payload{Seq: 2})

	assert.Equal(t, 1, calls, "a torn-down view must stop receiving events")

	// Unsubscribing twice is harmless.
	unsub()
}

func TestPublishWithoutSubscribersIsDropped(t *testing.T) {
	b := bus.New()
	assert.NotPanics(t, func() { b.Publish("nobody-listens", payload{Seq: 1}) })
}

func TestPayloadIsStructurallyCloned(t *testing.T) {
	b := bus.New()
	var got []payload

	handler := func(e bus.Event) {
		var p payload
		require.NoError(t, e.Decode(&p))
		p.Tags[0] = "mutated" // must not leak to other subscribers
		got = append(got, p)
	}
	b.Subscribe("tick", handler)
	b.Subscribe("tick", func(e bus.Event) {
		var p payload
		require.NoError(t, e.Decode(&p))
		got = append(got, p)
	})

	original := payload{Seq: 1, Tags: []string{"fresh"}}
	b.Publish("tick", original)

	require.Len(t, got, 2)
	assert.Equal(t, "fresh", got[1].Tags[0], "second subscriber sees its own clone")
	assert.Equal(t, "fresh", original.Tags[0], "publisher's value is untouched")
}

func TestDistinctNamesAreIndependent(t *testing.T) {
	b := bus.New()
	var names []string

	b.Subscribe("a", func(e bus.Event) { names = append(names, e.Name) })
	b.Subscribe("b", func(e bus.Event) { names = append(names, e.Name) })

	b.Publish("b", payload{})
	b.Publish("a", payload{})
	b.Publish("missing", payload{})

	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
