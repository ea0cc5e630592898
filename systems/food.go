package systems

// FoodItem is one unit of food on the simulation plane.
type FoodItem struct {
	X, Y   float64
	Active bool
}

// FoodPool owns all food items. The pool size is invariant for the life
// of the simulation: consuming an item deactivates it, relocates it to a
// fresh validated position, and reactivates it as one operation, so food
// density never drops. Nothing outside the pool may hold food state.
type FoodPool struct {
	items   []FoodItem
	sampler *Sampler
}

// NewFoodPool places count items at sampled positions.
func NewFoodPool(count int, sampler *Sampler) *FoodPool {
	p := &FoodPool{
		items:   make([]FoodItem, count),
		sampler: sampler,
	}
	for i := range p.items {
		x, y, _ := sampler.Sample()
		p.items[i] = FoodItem{X: x, Y: y, Active: true}
	}
	return p
}

// Count returns the fixed pool size.
func (p *FoodPool) Count() int { return len(p.items) }

// Item returns item i by value.
func (p *FoodPool) Item(i int) FoodItem { return p.items[i] }

// Items returns a copy of the pool for inspection.
func (p *FoodPool) Items() []FoodItem {
	return append([]FoodItem(nil), p.items...)
}

// Nearest returns the index and squared distance of the active item
// closest to (x, y), by linear scan. ok is false when no item is active.
func (p *FoodPool) Nearest(x, y float64) (idx int, distSq float64, ok bool) {
	best := -1
	bestSq := 0.0
	for i := range p.items {
		if !p.items[i].Active {
			continue
		}
		d := distanceSq(x, y, p.items[i].X, p.items[i].Y)
		if best < 0 || d < bestSq {
			best = i
			bestSq = d
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestSq, true
}

// Consume eats item i: deactivate, relocate to a fresh sampled position,
// reactivate. The new position is visible to every later reader in the
// same tick.
func (p *FoodPool) Consume(i int) {
	p.items[i].Active = false
	x, y, _ := p.sampler.Sample()
	p.items[i].X = x
	p.items[i].Y = y
	p.items[i].Active = true
}
