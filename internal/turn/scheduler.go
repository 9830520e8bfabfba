// Package turn runs entities in speed order and suspends when a
// human-controlled entity needs input.
package turn

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/logging"
	"github.com/samdwyer/deepcavern/internal/telemetry"
)

// Scheduler states.
const (
	StateIdle          = "idle"
	StateActing        = "acting"
	StateAwaitingInput = "awaiting_input"
	StateEnded         = "ended"
)

const (
	eventStart  = "start"
	eventAwait  = "await"
	eventResume = "resume"
	eventPause  = "pause"
	eventEnd    = "end"
)

// Action applies one move for the pending entity. It reports false when the
// move was refused and no turn passed.
type Action func(ctx context.Context) (bool, error)

// Scheduler drives the turn loop. It is not safe for concurrent use.
type Scheduler struct {
	fsm     *fsm.FSM
	queue   *speedQueue
	pending *entity.Entity
	turns   int
}

// NewScheduler creates an idle scheduler with an empty queue.
func NewScheduler() *Scheduler {
	s := &Scheduler{queue: newSpeedQueue()}
	s.fsm = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle}, Dst: StateActing},
			{Name: eventAwait, Src: []string{StateActing}, Dst: StateAwaitingInput},
			{Name: eventResume, Src: []string{StateAwaitingInput}, Dst: StateActing},
			{Name: eventPause, Src: []string{StateActing}, Dst: StateIdle},
			{Name: eventEnd, Src: []string{StateIdle, StateActing, StateAwaitingInput}, Dst: StateEnded},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger().WithFields(logrus.Fields{
					"from":  e.Src,
					"to":    e.Dst,
					"event": e.Event,
				}).Debug("scheduler transition")
			},
		},
	)
	return s
}

// Add queues e for its first turn.
func (s *Scheduler) Add(e *entity.Entity) {
	s.queue.add(e)
}

// Remove drops e from the queue. If e was awaiting input the scheduler
// stays suspended until it ends or is resumed by another entity.
func (s *Scheduler) Remove(e *entity.Entity) {
	s.queue.remove(e)
}

// Len returns how many entities are scheduled.
func (s *Scheduler) Len() int {
	return s.queue.len()
}

// State returns the current scheduler state.
func (s *Scheduler) State() string {
	return s.fsm.Current()
}

// Pending returns the entity whose input is awaited, or nil.
func (s *Scheduler) Pending() *entity.Entity {
	return s.pending
}

// Turns returns how many acts have run.
func (s *Scheduler) Turns() int {
	return s.turns
}

// Run starts the loop and returns at the first suspension, when the queue
// empties or when the scheduler ends. Calling Run while awaiting input does
// nothing.
func (s *Scheduler) Run(ctx context.Context) error {
	switch s.State() {
	case StateEnded:
		return ErrEnded
	case StateAwaitingInput, StateActing:
		return nil
	}
	if err := s.fsm.Event(ctx, eventStart); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	return s.loop(ctx)
}

// Resume applies action for the pending entity e and, if it used up the
// turn, continues the loop until the next suspension.
func (s *Scheduler) Resume(ctx context.Context, e *entity.Entity, action Action) error {
	switch {
	case s.fsm.Is(StateEnded):
		return ErrEnded
	case !s.fsm.Is(StateAwaitingInput):
		return ErrNotAwaitingInput
	case e != s.pending:
		return fmt.Errorf("resume %s: %w", e.Name, ErrNotPending)
	}

	ok, err := action(ctx)
	if err != nil {
		return err
	}
	if s.fsm.Is(StateEnded) || !ok {
		return nil
	}

	s.pending = nil
	if err := s.fsm.Event(ctx, eventResume); err != nil {
		return fmt.Errorf("resume scheduler: %w", err)
	}
	return s.loop(ctx)
}

// End stops the scheduler for good.
func (s *Scheduler) End(ctx context.Context) {
	if s.fsm.Is(StateEnded) {
		return
	}
	s.pending = nil
	if err := s.fsm.Event(ctx, eventEnd); err != nil {
		logger().WithError(err).Warn("end scheduler")
	}
}

func (s *Scheduler) loop(ctx context.Context) error {
	for {
		if s.fsm.Is(StateEnded) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			s.pause(ctx)
			return err
		}

		e, ok := s.queue.next()
		if !ok {
			s.pause(ctx)
			return nil
		}

		result, err := s.act(ctx, e)
		if err != nil {
			s.pause(ctx)
			return fmt.Errorf("act %s: %w", e.Name, err)
		}
		if s.fsm.Is(StateEnded) {
			return nil
		}
		if result == entity.TurnAwaitInput {
			s.pending = e
			if err := s.fsm.Event(ctx, eventAwait); err != nil {
				return fmt.Errorf("suspend scheduler: %w", err)
			}
			return nil
		}
	}
}

func (s *Scheduler) act(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
	ctx, span := telemetry.Tracer("turn").Start(ctx, "turn.act")
	defer span.End()

	s.turns++
	result, err := e.Act(ctx)
	span.SetAttributes(
		attribute.String("turn.entity", e.Name),
		attribute.String("turn.result", result.String()),
		attribute.Int("turn.number", s.turns),
	)
	return result, err
}

func (s *Scheduler) pause(ctx context.Context) {
	if s.fsm.Can(eventPause) {
		if err := s.fsm.Event(ctx, eventPause); err != nil {
			logger().WithError(err).Warn("pause scheduler")
		}
	}
}

func logger() *logrus.Entry {
	return logging.For("turn")
}
