package batch

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAddAndPeek(t *testing.T) {
	index := NewMemory()

	index.Add("ABAN", Entry{OrderID: 1, Amount: decimal.NewFromInt(1), AdmittedAt: time.Now()})
	index.Add("ABAN", Entry{OrderID: 2, Amount: decimal.RequireFromString("0.5"), AdmittedAt: time.Now()})
	index.Add("BTC", Entry{OrderID: 3, Amount: decimal.NewFromInt(2), AdmittedAt: time.Now()})

	assert.Equal(t, 2, index.Len("ABAN"))
	assert.Equal(t, 1, index.Len("BTC"))
	assert.True(t, index.PeekTotal("ABAN").Equal(decimal.RequireFromString("1.5")))
	assert.True(t, index.PeekTotal("BTC").Equal(decimal.NewFromInt(2)))
	// PeekTotal не изменяет коллекцию.
	assert.Equal(t, 2, index.Len("ABAN"))
}

func TestMemorySnapshotAndDrain(t *testing.T) {
	index := NewMemory()

	index.Add("ABAN", Entry{OrderID: 1, Amount: decimal.NewFromInt(1), AdmittedAt: time.Now()})
	index.Add("ABAN", Entry{OrderID: 2, Amount: decimal.NewFromInt(1), AdmittedAt: time.Now()})

	entries := index.SnapshotAndDrain("ABAN")

	require.Len(t, entries, 2)
	// порядок записей - порядок допуска.
	assert.Equal(t, int64(1), entries[0].OrderID)
	assert.Equal(t, int64(2), entries[1].OrderID)

	// после дрейна коллекция пуста, повторный дрейн возвращает nil.
	assert.Zero(t, index.Len("ABAN"))
	assert.Nil(t, index.SnapshotAndDrain("ABAN"))
	assert.Nil(t, index.SnapshotAndDrain("UNKNOWN"))
}

// TestMemoryConcurrentDrain проверяет что при конкурентных Add и SnapshotAndDrain
// каждая запись попадает ровно в один дрейн.
func TestMemoryConcurrentDrain(t *testing.T) {
	const writers = 8
	const perWriter = 200

	index := NewMemory()

	var wg sync.WaitGroup
	drained := make(chan []Entry, writers*perWriter)

	for w := range writers {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := range perWriter {
				index.Add("ABAN", Entry{
					OrderID:    int64(offset*perWriter + i + 1),
					Amount:     decimal.NewFromInt(1),
					AdmittedAt: time.Now(),
				})
				if i%10 == 0 {
					drained <- index.SnapshotAndDrain("ABAN")
				}
			}
		}(w)
	}

	wg.Wait()
	drained <- index.SnapshotAndDrain("ABAN")
	close(drained)

	seen := make(map[int64]int)
	for snapshot := range drained {
		for _, entry := range snapshot {
			seen[entry.OrderID]++
		}
	}

	require.Len(t, seen, writers*perWriter)
	for orderID, count := range seen {
		require.Equalf(t, 1, count, "order %d drained %d times", orderID, count)
	}
	assert.Zero(t, index.Len("ABAN"))
}
