package sequence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the UPSERT counter: every call increments per key.
type mockQuerier struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	key, _ := args[0].(string)
	m.counts[key]++
	return &mockRow{val: m.counts[key]}
}

func TestNext_DailyInvoiceFormat(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	date := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	num, err := svc.Next(ctx, InvoiceConfig(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-20260315-0001" {
		t.Errorf("expected INV-20260315-0001, got %s", num)
	}

	num, err = svc.Next(ctx, InvoiceConfig(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-20260315-0002" {
		t.Errorf("expected INV-20260315-0002, got %s", num)
	}
}

func TestNext_CounterRestartsPerDay(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 16, 0, 1, 0, 0, time.UTC)

	first, err := svc.Next(ctx, InvoiceConfig(), day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Next(ctx, InvoiceConfig(), day2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != "INV-20260315-0001" {
		t.Errorf("expected INV-20260315-0001, got %s", first)
	}
	// A new day gets its own counter row, restarting at 1.
	if second != "INV-20260316-0001" {
		t.Errorf("expected INV-20260316-0001, got %s", second)
	}
}

func TestNext_ConcurrentAllocationsAreUnique(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	const n = 50
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.Next(ctx, InvoiceConfig(), date)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for num := range results {
		if seen[num] {
			t.Fatalf("duplicate number allocated: %s", num)
		}
		seen[num] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d unique numbers, got %d", n, len(seen))
	}
}
