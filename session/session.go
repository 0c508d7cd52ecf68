// Package session orchestrates one paper-trading run: it drives the price
// source, the Renko engine, the setup detector, the risk budget and the
// ledger through the per-tick protocol, and publishes everything the
// presentation shell needs onto the event queue.
//
// Concurrency model: the loop goroutine is the only mutator of core state.
// The shell interacts through exactly two control signals, Start and Stop,
// plus the thread-safe event queue. Cancellation is cooperative; a stop
// request takes effect within one tick interval.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/mastermind/events"
	"github.com/rustyeddy/mastermind/journal"
	"github.com/rustyeddy/mastermind/ledger"
	"github.com/rustyeddy/mastermind/pricing"
	"github.com/rustyeddy/mastermind/renko"
	"github.com/rustyeddy/mastermind/risk"
	"github.com/rustyeddy/mastermind/strategies"
)

// State is the externally observable session state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "Running"
	}
	return "Stopped"
}

// Options carries the session's pluggable collaborators. Zero values get
// sensible defaults: a fresh simulator, RandomExit, no journal, a nop
// logger and a default-capacity queue.
type Options struct {
	Source  pricing.Source
	Exit    ledger.ExitPolicy
	Journal journal.Journal
	Logger  *zap.Logger
	Rand    *rand.Rand
	Queue   *events.Queue
}

// Session is the trading orchestrator. Create with New, drive with Start
// and Stop; consume output by draining Events().
type Session struct {
	cfg    Config
	queue  *events.Queue
	log    *zap.Logger
	jrnl   journal.Journal
	rng    *rand.Rand
	source pricing.Source
	exit   ledger.ExitPolicy

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}

	// Loop-owned; rebuilt on every Start, touched only by the loop
	// goroutine while Running.
	engine   *renko.Engine
	detector strategies.Detector
	budget   *risk.Budget
	book     *ledger.Ledger
	price    float64
	lastTick time.Time
}

func New(cfg Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	source := opts.Source
	if source == nil {
		source = pricing.NewSimulator(cfg.Volatility, rng)
	}
	exit := opts.Exit
	if exit == nil {
		exit = ledger.RandomExit{Prob: 0.05, Rand: rng}
	}
	jrnl := opts.Journal
	if jrnl == nil {
		jrnl = journal.Nop{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	queue := opts.Queue
	if queue == nil {
		queue = events.NewQueue(events.DefaultQueueCapacity)
	}

	return &Session{
		cfg:    cfg,
		queue:  queue,
		log:    log,
		jrnl:   jrnl,
		rng:    rng,
		source: source,
		exit:   exit,
	}, nil
}

// Events returns the queue the shell polls.
func (s *Session) Events() *events.Queue { return s.queue }

// State reports the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the session's parameter snapshot.
func (s *Session) Config() Config { return s.cfg }

// Reconfigure replaces the parameter set. Only legal while Stopped; the
// next Start snapshots the new configuration into fresh components, which
// also clears the brick history.
func (s *Session) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		return fmt.Errorf("session: cannot reconfigure while running")
	}
	s.cfg = cfg
	return nil
}

// Start transitions Stopped -> Running and launches the tick loop. Calling
// Start while already Running is a no-op: state is not re-initialized and
// no second loop is spawned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return nil
	}

	if err := s.initRun(); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = Running

	s.queue.Push(events.Log{Text: fmt.Sprintf(
		"Trading started on %s for %s", s.cfg.Exchange, s.cfg.Symbol)})
	s.queue.Push(events.Log{Text: "Paper trading mode - trades are simulated"})
	s.log.Info("session started",
		zap.String("symbol", s.cfg.Symbol),
		zap.String("exchange", s.cfg.Exchange),
		zap.Float64("brick_size", s.cfg.BrickSize),
	)

	go s.loop(loopCtx)
	return nil
}

// initRun snapshots the configuration into fresh core components.
func (s *Session) initRun() error {
	engine, err := renko.New(s.cfg.BrickSize)
	if err != nil {
		return err
	}

	s.engine = engine
	s.detector = strategies.Detector{
		Setup1Enabled: s.cfg.Setup1Enabled,
		Setup2Enabled: s.cfg.Setup2Enabled,
	}
	s.budget = risk.NewBudget(s.cfg.RiskPerTradePct, s.cfg.MaxDailyRiskPct)
	s.book = ledger.New(s.cfg.InitialEquity, s.jrnl)
	s.price = s.cfg.InitialPrice
	s.lastTick = time.Time{}
	return nil
}

// Stop requests cooperative cancellation and blocks until the loop has
// liquidated all open positions and transitioned to Stopped. Stopping a
// stopped session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// Run starts the session and blocks until the context is done or the
// session stops itself (tick failure or source exhaustion), then stops it.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		s.Stop()
	case <-done:
	}
	return nil
}
