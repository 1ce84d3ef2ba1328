package sim

import (
	"errors"
	"runtime"
	"sync"
)

// Job is one unit of fork-join work.
type Job func()

var (
	// ErrPoolStopped is returned by Submit after Stop.
	ErrPoolStopped = errors.New("sim: pool is stopped")
	// ErrQueueFull is returned by Submit when the work queue is exhausted.
	// A failed submit must never pass silently: an unprocessed chunk would
	// break the frame's full-coverage invariant.
	ErrQueueFull = errors.New("sim: pool queue is full")
)

// Pool is a fixed set of persistent worker goroutines with a fork-join
// barrier. One goroutine (the frame driver) submits a round of jobs and
// blocks in Join until all of them finish; workers never block on anything
// but the work channel.
//
// Submit and Join must be called from the same goroutine.
type Pool struct {
	workers int

	work chan Job      // sends work to workers
	done chan struct{} // workers signal completion
	stop chan struct{} // signals workers to exit
	wg   sync.WaitGroup

	inFlight int // jobs submitted but not yet joined; driver goroutine only
	running  bool
}

// NewPool starts a pool of the given size. A size below one defaults to one
// worker per logical CPU.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		work:    make(chan Job, workers*2),
		done:    make(chan struct{}, workers*2),
		stop:    make(chan struct{}),
		running: true,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// worker runs in a goroutine, processing jobs until stopped.
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			return
		case job, ok := <-p.work:
			if !ok {
				return
			}
			job()
			p.done <- struct{}{}
		}
	}
}

// Submit enqueues one job without blocking. The error cases are loud on
// purpose: the caller owns the decision to retry or abort the frame.
func (p *Pool) Submit(job Job) error {
	if !p.running {
		return ErrPoolStopped
	}
	select {
	case p.work <- job:
		p.inFlight++
		return nil
	default:
		return ErrQueueFull
	}
}

// Join blocks until every submitted job has completed. This is the hard
// barrier between pipeline stages: no partial results are observable and the
// next stage must not start before it returns.
func (p *Pool) Join() {
	for p.inFlight > 0 {
		<-p.done
		p.inFlight--
	}
}

// Stop waits for in-flight work, then releases the worker goroutines.
// Safe to call once; Submit afterwards reports ErrPoolStopped.
func (p *Pool) Stop() {
	if !p.running {
		return
	}
	p.Join()
	close(p.stop)
	p.wg.Wait()
	p.running = false
}
