package dream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/will-marella/ascii-dream/pkg/generate"
	"github.com/will-marella/ascii-dream/pkg/motion"
	"github.com/will-marella/ascii-dream/pkg/prompt"
)

// FallbackPrompt is the neutral prompt used for the last-resort
// generation after all retries on the real prompt have failed.
const FallbackPrompt = "abstract colorful shapes"

// fallbackLabel is the prompt text attached to fallback frames.
const fallbackLabel = FallbackPrompt + " [fallback]"

// prefillPollInterval is how often Prefill re-checks the queue size.
const prefillPollInterval = 100 * time.Millisecond

// iterationPause is how long the producer pauses after an iteration
// fails outside the retry-wrapped generation step.
const iterationPause = time.Second

// Options configures a Queue.
type Options struct {
	// Depth is the queue capacity. Default 2.
	Depth int

	// Width and Height are the generation dimensions in pixels.
	Width, Height int

	// FramesPerCycle is the number of prompts looped over. 1 (the
	// default) draws a fresh prompt for every frame.
	FramesPerCycle int

	// MaxRetries is the number of generation attempts per prompt before
	// the fallback generation. Default 2.
	MaxRetries int

	// Motion supplies correlated per-frame seeds in cycle mode. Nil
	// leaves seeding to the backend.
	Motion *motion.Plan

	// Sleep is the producer's sleep function, used for retry backoff
	// and the post-failure iteration pause. Nil uses a stop-aware
	// real-time sleep. Tests inject a recorder or fake clock here.
	Sleep func(time.Duration)

	// Log receives producer diagnostics. Nil uses slog.Default().
	Log *slog.Logger
}

// Queue is a bounded single-producer/single-consumer buffer of frames.
// The producer goroutine draws prompts, generates images with
// retry-then-fallback, renders them, and publishes frames; backpressure
// comes solely from the channel capacity.
type Queue struct {
	gen      generate.Generator
	seq      prompt.Sequencer
	renderer Renderer
	opts     Options

	frames chan Frame
	stop   chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	started  bool
	stopping bool
	sleep    func(time.Duration)
	log      *slog.Logger
}

// NewQueue creates a Queue. The producer does not run until Start.
func NewQueue(gen generate.Generator, seq prompt.Sequencer, renderer Renderer, opts Options) *Queue {
	if opts.Depth < 1 {
		opts.Depth = 2
	}
	if opts.FramesPerCycle < 1 {
		opts.FramesPerCycle = 1
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 2
	}

	q := &Queue{
		gen:      gen,
		seq:      seq,
		renderer: renderer,
		opts:     opts,
		frames:   make(chan Frame, opts.Depth),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		log:      opts.Log,
	}
	if q.log == nil {
		q.log = slog.Default()
	}
	q.sleep = opts.Sleep
	if q.sleep == nil {
		q.sleep = q.stopAwareSleep
	}
	return q
}

// Start launches the producer goroutine. Calling Start again, or after
// Stop, is a no-op.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.stopping {
		return
	}
	q.started = true
	go q.run()
}

// Stop requests a cooperative shutdown and waits for the producer to
// finish its current iteration. An in-flight generation call is allowed
// to complete; it is never cancelled mid-flight. Safe to call more than
// once.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.stopping {
		q.stopping = true
		close(q.stop)
	}
	started := q.started
	q.mu.Unlock()

	if started {
		<-q.done
	}
}

// Prefill blocks until the queue holds at least its configured depth,
// polling at a short interval. It returns ctx's error if the context
// expires first, which is the signal that the backend is unreachable at
// session start.
func (q *Queue) Prefill(ctx context.Context) error {
	ticker := time.NewTicker(prefillPollInterval)
	defer ticker.Stop()

	for {
		if len(q.frames) >= q.opts.Depth {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("prefill: %w", ctx.Err())
		case <-q.stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Next blocks until a frame is available or the timeout expires. The
// second return is false on timeout and on a stopped, drained queue, so
// a consumer can never deadlock against a producer that will not fill
// the queue again.
func (q *Queue) Next(timeout time.Duration) (Frame, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case f, ok := <-q.frames:
		return f, ok
	case <-timer.C:
		return Frame{}, false
	}
}

// TryNext is the non-blocking poll: it returns immediately with false
// when no frame is ready.
func (q *Queue) TryNext() (Frame, bool) {
	select {
	case f, ok := <-q.frames:
		return f, ok
	default:
		return Frame{}, false
	}
}

// Empty reports whether no frame is currently buffered.
func (q *Queue) Empty() bool {
	return len(q.frames) == 0
}

// Len returns the number of buffered frames.
func (q *Queue) Len() int {
	return len(q.frames)
}

// run is the producer loop. It owns the prompt cursor and is the only
// sender on q.frames, so it closes the channel on exit.
func (q *Queue) run() {
	defer close(q.done)
	defer close(q.frames)

	n := q.opts.FramesPerCycle
	var buffer []string
	frameIdx := 0

	for !q.stopRequested() {
		// Refill the prompt buffer at every cycle boundary. With N==1
		// that means a fresh prompt per frame; with N>1 the same N
		// prompts repeat for one full cycle, then the next cycle draws
		// again so a themed journey keeps evolving.
		if frameIdx == 0 {
			buffer = buffer[:0]
			for i := 0; i < n; i++ {
				p := q.seq.Next()
				if p == "" {
					// Sequencers are infinite by contract; an empty
					// draw means one is misbehaving. Keep dreaming.
					p = "abstract colorful patterns"
				}
				buffer = append(buffer, p)
			}
		}

		p := buffer[frameIdx%len(buffer)]

		var seed *int64
		if q.opts.Motion != nil && n > 1 {
			s := q.opts.Motion.Seed(frameIdx)
			seed = &s
		}

		frame, err := q.generateWithRetry(p, seed)
		if err != nil {
			// Even the fallback failed. Pause and retry the same slot;
			// the loop only ends on an explicit stop.
			q.log.Warn("dream frame generation failed", "prompt", p, "error", err)
			q.sleep(iterationPause)
			continue
		}

		select {
		case q.frames <- frame:
		case <-q.stop:
			return
		}

		frameIdx = (frameIdx + 1) % n
	}
}

// generateWithRetry runs the retry-then-fallback state machine for one
// prompt slot: up to MaxRetries attempts with exponential backoff
// (2^attempt seconds), then one fallback generation with the neutral
// prompt and no seed. Only a failed fallback returns an error.
func (q *Queue) generateWithRetry(p string, seed *int64) (Frame, error) {
	req := generate.Request{
		Prompt: p,
		Width:  q.opts.Width,
		Height: q.opts.Height,
		Seed:   seed,
	}

	for attempt := 0; attempt < q.opts.MaxRetries; attempt++ {
		img, err := q.gen.Generate(context.Background(), req)
		if err == nil {
			return Frame{Art: q.renderer.Convert(img), Prompt: p}, nil
		}

		q.log.Debug("generation attempt failed",
			"prompt", p, "attempt", attempt, "error", err)

		if attempt == q.opts.MaxRetries-1 {
			break
		}
		q.sleep(time.Duration(1<<attempt) * time.Second)
	}

	// Last resort: a neutral prompt with independent randomness. The
	// frame is labeled so the degradation is visible on screen.
	img, err := q.gen.Generate(context.Background(), generate.Request{
		Prompt: FallbackPrompt,
		Width:  q.opts.Width,
		Height: q.opts.Height,
	})
	if err != nil {
		return Frame{}, fmt.Errorf("fallback generation: %w", err)
	}
	return Frame{Art: q.renderer.Convert(img), Prompt: fallbackLabel}, nil
}

// stopRequested reports whether Stop has been called.
func (q *Queue) stopRequested() bool {
	select {
	case <-q.stop:
		return true
	default:
		return false
	}
}

// stopAwareSleep sleeps for d but wakes early when Stop is called, so a
// shutdown never waits out a backoff timer.
func (q *Queue) stopAwareSleep(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-q.stop:
	}
}
