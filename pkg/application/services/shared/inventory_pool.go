// Package shared holds the mutable allocation state passed explicitly
// through the binding evaluator call chain.
package shared

import "github.com/songka/bomcheck/pkg/domain/entities"

// InventoryPool is the single source of truth for the unconsumed balance of
// every part key during one binding evaluation pass. It is depleted as
// allocation proceeds and must never be shared across invocations.
type InventoryPool map[entities.PartKey]float64

// NewInventoryPool seeds a pool from the aggregated quantities.
func NewInventoryPool(index *entities.PartIndex) InventoryPool {
	pool := make(InventoryPool, index.Len())
	for _, key := range index.Keys() {
		pool[key] = index.Quantity(key)
	}
	return pool
}

// Balance returns the remaining allocatable quantity for a key, never
// negative.
func (p InventoryPool) Balance(key entities.PartKey) float64 {
	if balance := p[key]; balance > 0 {
		return balance
	}
	return 0
}

// Consume takes up to qty from the key's balance and returns the amount
// actually taken. Consumption can never exceed the current balance.
func (p InventoryPool) Consume(key entities.PartKey, qty float64) float64 {
	balance := p.Balance(key)
	if qty <= 0 || balance <= 0 {
		return 0
	}
	take := qty
	if balance < take {
		take = balance
	}
	p[key] = balance - take
	return take
}
