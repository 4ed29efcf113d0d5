package workpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolExitWhenNoWork(t *testing.T) {
	numWorkers := 5
	outputs := make(chan int, numWorkers)

	worker := func(done <-chan struct{}) bool {
		outputs <- 1
		return false
	}
	closer := func() {
		close(outputs)
	}
	pool := &WorkPool{
		Handler: worker,
		Workers: numWorkers,
		Close:   closer,
	}

	start := time.Now()
	pool.Run()
	sum := 0
	for result := range outputs {
		sum += result
	}
	dur := time.Since(start)

	assert.Equal(t, numWorkers, sum)
	assert.True(t, dur < 100*time.Millisecond)
}

func TestWorkerPoolDrainsAllWork(t *testing.T) {
	numInputs := 100
	numWorkers := 4
	inputs := make(chan int, numInputs)
	outputs := make(chan int, numInputs)

	for i := 0; i < numInputs; i++ {
		inputs <- i
	}
	close(inputs)

	worker := func(done <-chan struct{}) bool {
		for i := range inputs {
			outputs <- i
			return true
		}
		return false
	}
	closer := func() {
		close(outputs)
	}

	pool := NewWithClose(numWorkers, worker, closer)
	pool.Run()

	count := 0
	for range outputs {
		count++
	}
	assert.Equal(t, numInputs, count)
}

func TestWorkerPoolCancel(t *testing.T) {
	numWorkers := 3
	started := make(chan struct{}, numWorkers)

	worker := func(done <-chan struct{}) bool {
		started <- struct{}{}
		<-done
		return false
	}

	pool := New(numWorkers, worker)
	go pool.Run()

	for i := 0; i < numWorkers; i++ {
		<-started
	}
	pool.Cancel()

	finished := make(chan struct{})
	go func() {
		// Run has already consumed the workers; a second Wait is not
		// exposed, so give cancellation a moment to propagate.
		time.Sleep(10 * time.Millisecond)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pool did not cancel in time")
	}
}
