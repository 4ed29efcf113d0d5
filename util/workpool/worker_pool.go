// Package workpool provides a lightweight abstraction around a work function
// to make it easier to create work pools with early termination. The catalog
// loader uses it to parse independent metadata documents in parallel; the
// pool manages concurrency of execution so callers can focus on the work
// itself.
package workpool

import (
	"sync"
)

// WorkHandler is a blocking call which manages the retrieval and processing
// of work. It should either process all available work, or a single piece of
// work and return. If you return after processing one piece of work the pool
// will keep calling the handler.
//
// Return true if the handler should be called again, otherwise return false
// to indicate work is complete.
//
// The done signal is triggered if the pool has been cancelled. It indicates
// that work should terminate immediately.
//
// Where work comes from is implementation dependent. The catalog loader feeds
// documents through a channel:
//
//	func parse(input <-chan Document, output chan<- result) WorkHandler {
//	    return func(done <-chan struct{}) bool {
//	        for doc := range input {
//	            output <- decode(doc)
//	            return true
//	        }
//	        return false
//	    }
//	}
type WorkHandler func(done <-chan struct{}) bool

// New creates a worker pool with a given handler function.
func New(numWorkers int, handler WorkHandler) *WorkPool {
	return &WorkPool{
		Handler: handler,
		Workers: numWorkers,
		done:    make(chan struct{}),
	}
}

// NewWithClose creates a worker pool with a given handler function and a
// function to call when shutting down.
func NewWithClose(numWorkers int, handler WorkHandler, close func()) *WorkPool {
	return &WorkPool{
		Handler: handler,
		Workers: numWorkers,
		done:    make(chan struct{}),
		Close:   close,
	}
}

// WorkPool manages running a WorkHandler in some number of goroutines. It
// also manages a cancel signal to allow for early termination.
type WorkPool struct {
	Handler WorkHandler
	Workers int
	done    chan struct{}
	Close   func()
}

// Run starts the configured number of workers and calls WorkHandler until all
// work has been processed, or the execution is cancelled.
func (p *WorkPool) Run() {
	if p.done == nil {
		p.done = make(chan struct{})
	}
	if p.Close != nil {
		defer p.Close()
	}
	var wg sync.WaitGroup
	wg.Add(p.Workers)
	for i := 0; i < p.Workers; i++ {
		go func() {
			defer wg.Done()
			handler := p.Handler
			for {
				select {
				case <-p.done:
					return
				default:
					foundWork := handler(p.done)
					if !foundWork {
						return
					}
				}
			}
		}()
	}

	// Wait until the goroutines finish. By cancellation or otherwise.
	wg.Wait()
}

// Cancel may be called asynchronously to signal that the pool should stop
// processing work and return to the caller. A done signal will be sent to
// each WorkHandler to allow for graceful shutdown.
func (p *WorkPool) Cancel() {
	close(p.done)
}
