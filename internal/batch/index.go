// Package batch содержит индекс необработанных заявок, сгруппированных по монете.
// Индекс - горячий путь агрегации: на каждую заявку трогается только коллекция
// её монеты, а не вся таблица заявок в БД.
package batch

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Entry проекция заявки в индексе: id, количество монет и момент допуска.
type Entry struct {
	OrderID    int64
	Amount     decimal.Decimal
	AdmittedAt time.Time
}

// Index контракт индекса ожидающих заявок. Add и SnapshotAndDrain атомарны
// относительно друг друга по одному ключу монеты: одна и та же запись не может
// попасть в два дрейна, добавление не может потеряться. Реализация может быть
// как внутрипроцессной, так и поверх внешнего sorted-set хранилища с ключами
// вида `pending:<coin_symbol>`.
type Index interface {
	Add(coinSymbol string, entry Entry)
	SnapshotAndDrain(coinSymbol string) []Entry
	PeekTotal(coinSymbol string) decimal.Decimal
	Len(coinSymbol string) int
}

// Memory внутрипроцессная реализация Index. Коллекции разных монет живут под одним
// мьютексом: операции короткие (append / свап слайса), сетевых вызовов под
// блокировкой нет.
type Memory struct {
	mu      sync.Mutex
	pending map[string][]Entry
}

func NewMemory() *Memory {
	return &Memory{
		pending: make(map[string][]Entry),
	}
}

// Add добавляет запись в конец коллекции монеты. Порядок записей - порядок допуска.
func (m *Memory) Add(coinSymbol string, entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[coinSymbol] = append(m.pending[coinSymbol], entry)
}

// SnapshotAndDrain атомарно забирает и очищает коллекцию монеты. Возвращает записи
// в порядке допуска; nil если коллекция пуста (в том числе при проигранной гонке
// с конкурентным дрейном).
func (m *Memory) SnapshotAndDrain(coinSymbol string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.pending[coinSymbol]
	if len(entries) == 0 {
		return nil
	}
	delete(m.pending, coinSymbol)
	return entries
}

// PeekTotal возвращает сумму количеств монет в коллекции, не изменяя её.
// Значение справочное: решение о сеттлменте всегда принимается по задрейненному
// снапшоту.
func (m *Memory) PeekTotal(coinSymbol string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, entry := range m.pending[coinSymbol] {
		total = total.Add(entry.Amount)
	}
	return total
}

// Len возвращает количество записей в коллекции монеты.
func (m *Memory) Len(coinSymbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending[coinSymbol])
}
