package services

import (
	"context"
	"testing"
	"time"
)

func TestMetricsHub_BroadcastNeverBlocks(t *testing.T) {
	hub := NewMetricsHub()
	// no Run loop draining; samples past the buffer are dropped
	for i := 0; i < 100; i++ {
		hub.Broadcast(MetricSample{CapturedAt: time.Now()})
	}
}

func TestMetricsHub_RunStopsOnCancel(t *testing.T) {
	hub := NewMetricsHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop on cancel")
	}
}
