package signal

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLatestValueWins(t *testing.T) {
	s := New[int]()
	s.Publish(1)
	s.Publish(2)

	v, err := s.Wait(context.Background())
	if err != nil || v != 2 {
		t.Fatalf("Wait = %d, %v; want 2", v, err)
	}
	if _, ok := s.TryTake(); ok {
		t.Fatal("overwritten value delivered twice")
	}
}

func TestSecondReadBlocksUntilPublish(t *testing.T) {
	s := New[string]()
	s.Publish("a")
	if v, _ := s.Wait(context.Background()); v != "a" {
		t.Fatalf("first read = %q", v)
	}

	got := make(chan string, 1)
	go func() {
		v, _ := s.Wait(context.Background())
		got <- v
	}()

	select {
	case v := <-got:
		t.Fatalf("second read returned %q without a publish", v)
	case <-time.After(20 * time.Millisecond):
	}

	s.Publish("b")
	select {
	case v := <-got:
		if v != "b" {
			t.Fatalf("second read = %q, want b", v)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for second read")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	s := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Wait(ctx); err != context.Canceled {
		t.Fatalf("Wait err = %v, want context.Canceled", err)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	s := New[int]()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			s.Publish(i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no reader")
	}
	if v, ok := s.TryTake(); !ok || v != 999 {
		t.Fatalf("TryTake = %d, %v; want 999", v, ok)
	}
}

func TestConcurrentWritersAndReader(t *testing.T) {
	s := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Publish(base + i)
			}
		}(w * 1000)
	}

	reads := make(chan int, 1024)
	go func() {
		for {
			v, err := s.Wait(ctx)
			if err != nil {
				return
			}
			reads <- v
		}
	}()

	wg.Wait()
	s.Publish(-1)

	deadline := time.After(time.Second)
	for {
		select {
		case v := <-reads:
			if v == -1 {
				return
			}
		case <-deadline:
			t.Fatal("final value never observed")
		}
	}
}

func TestSelectRace(t *testing.T) {
	s := New[int]()
	s.Publish(7)
	select {
	case v := <-s.C():
		if v != 7 {
			t.Fatalf("C() = %d, want 7", v)
		}
	case <-time.After(50 * time.Millisecond):
		t.Fatal("pending value not visible on C()")
	}
	if s.Pending() {
		t.Fatal("value still pending after receive")
	}
}
