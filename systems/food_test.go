package systems

import (
	"math/rand"
	"testing"

	"github.com/Lucieguerin431/bloomfall/terrain"
)

func testPool(t *testing.T, count int) *FoodPool {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	sampler := NewSampler(200, 24, terrain.Flat{}, rng)
	return NewFoodPool(count, sampler)
}

func TestNewFoodPool(t *testing.T) {
	p := testPool(t, 40)

	if p.Count() != 40 {
		t.Fatalf("count: got %d, want 40", p.Count())
	}
	for i, item := range p.Items() {
		if !item.Active {
			t.Errorf("item %d inactive at start", i)
		}
		if item.X < -200 || item.X > 200 || item.Y < -200 || item.Y > 200 {
			t.Errorf("item %d at (%f, %f) outside the arena", i, item.X, item.Y)
		}
	}
}

func TestNearestFindsClosestActive(t *testing.T) {
	p := testPool(t, 0)
	p.items = []FoodItem{
		{X: 100, Y: 0, Active: true},
		{X: 10, Y: 0, Active: true},
		{X: 50, Y: 0, Active: true},
	}

	idx, distSq, ok := p.Nearest(0, 0)
	if !ok {
		t.Fatal("Nearest found nothing")
	}
	if idx != 1 {
		t.Errorf("nearest index: got %d, want 1", idx)
	}
	if distSq != 100 {
		t.Errorf("nearest squared distance: got %f, want 100", distSq)
	}
}

func TestNearestSkipsInactive(t *testing.T) {
	p := testPool(t, 0)
	p.items = []FoodItem{
		{X: 1, Y: 0, Active: false},
		{X: 80, Y: 0, Active: true},
	}

	idx, _, ok := p.Nearest(0, 0)
	if !ok {
		t.Fatal("Nearest found nothing with one active item")
	}
	if idx != 1 {
		t.Errorf("nearest index: got %d, want 1 (item 0 is inactive)", idx)
	}
}

func TestNearestEmptyPool(t *testing.T) {
	p := testPool(t, 0)
	if _, _, ok := p.Nearest(0, 0); ok {
		t.Fatal("Nearest reported a hit on an empty pool")
	}
}

func TestConsumeRelocatesAndKeepsDensity(t *testing.T) {
	p := testPool(t, 12)
	before := p.Item(3)

	p.Consume(3)

	if p.Count() != 12 {
		t.Fatalf("count after consume: got %d, want 12", p.Count())
	}
	after := p.Item(3)
	if !after.Active {
		t.Fatal("consumed item left inactive")
	}
	if after.X == before.X && after.Y == before.Y {
		t.Fatal("consumed item was not relocated")
	}
	for i, item := range p.Items() {
		if !item.Active {
			t.Fatalf("item %d inactive after consume", i)
		}
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	p := testPool(t, 3)
	items := p.Items()
	items[0].X = 9999
	if p.Item(0).X == 9999 {
		t.Fatal("Items aliased the pool's backing storage")
	}
}

func BenchmarkNearest(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	sampler := NewSampler(200, 24, terrain.Flat{}, rng)
	p := NewFoodPool(60, sampler)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Nearest(13, -57)
	}
}
