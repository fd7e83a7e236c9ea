package nebulous

import (
	"testing"
	"time"
)

func TestOutboundQueueFIFOOrder(t *testing.T) {
	q := newOutboundQueue()
	q.enqueue([]byte("a"))
	q.enqueue([]byte("b"))
	q.enqueue([]byte("c"))

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.tryDequeue()
		if !ok || string(got) != want {
			t.Fatalf("tryDequeue() = %q, %v, want %q, true", got, ok, want)
		}
	}
	if _, ok := q.tryDequeue(); ok {
		t.Fatal("tryDequeue() on empty queue should return ok=false")
	}
}

func TestOutboundQueueTryDequeueNonBlocking(t *testing.T) {
	q := newOutboundQueue()
	done := make(chan struct{})
	go func() {
		_, ok := q.tryDequeue()
		if ok {
			t.Error("tryDequeue() on empty queue unexpectedly returned ok=true")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tryDequeue() blocked on an empty queue")
	}
}

func TestOutboundQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	q := newOutboundQueue()
	result := make(chan []byte, 1)
	go func() {
		payload, ok := q.dequeue(nil)
		if !ok {
			return
		}
		result <- payload
	}()

	time.Sleep(20 * time.Millisecond)
	q.enqueue([]byte("payload"))

	select {
	case payload := <-result:
		if string(payload) != "payload" {
			t.Fatalf("dequeue() = %q, want %q", payload, "payload")
		}
	case <-time.After(time.Second):
		t.Fatal("dequeue() did not wake up after enqueue")
	}
}

func TestOutboundQueueDequeueUnblocksOnDone(t *testing.T) {
	q := newOutboundQueue()
	done := make(chan struct{})
	result := make(chan bool, 1)

	go func() {
		_, ok := q.dequeue(done)
		result <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	close(done)

	select {
	case ok := <-result:
		if ok {
			t.Fatal("dequeue() should report ok=false when done fires first")
		}
	case <-time.After(time.Second):
		t.Fatal("dequeue() did not return after done was closed")
	}
}
