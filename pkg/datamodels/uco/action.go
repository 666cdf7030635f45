package uco

import (
	"time"

	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
)

// Clock returns the current time. Actions stamp start and end times with it.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// Action is something that may be done or performed. Its fields refer to
// the separate objects that took part in it.
type Action struct {
	*entities.DocumentImpl
	clock Clock
}

//NewAction creates a new instance of Action
func NewAction(b *entities.Builder, decorators ...entities.DocumentDecoratorFunc) (*Action, error) {
	return NewActionOfType(b, ActionTypeName, decorators...)
}

// NewActionOfType creates an action with a more specific type, such as an
// investigative action
func NewActionOfType(b *entities.Builder, actionType string, decorators ...entities.DocumentDecoratorFunc) (*Action, error) {
	d, err := b.New(actionType, decorators...)
	if err != nil {
		return nil, err
	}

	return &Action{DocumentImpl: d, clock: SystemClock}, nil
}

// WithClock replaces the clock used by SetStartTime and SetEndTime
func (a *Action) WithClock(clock Clock) *Action {
	a.clock = clock
	return a
}

// SetStartTime records the current time as the start of the action
func (a *Action) SetStartTime() (time.Time, error) {
	return a.stamp(StartTime)
}

// SetEndTime records the current time as the completion of the action
func (a *Action) SetEndTime() (time.Time, error) {
	return a.stamp(EndTime)
}

func (a *Action) stamp(field string) (time.Time, error) {
	now := a.clock().UTC()
	return now, a.Apply(entities.DateTime(field, now))
}

func (a *Action) AppendResults(results ...any) error {
	return a.AppendRefs(Result, results...)
}

// AppendActionObjects adds references to the objects the action was
// performed on
func (a *Action) AppendActionObjects(objects ...any) error {
	return a.AppendRefs(Object, objects...)
}

func StartTimeAt(t any) entities.DocumentDecoratorFunc {
	return entities.DateTime(StartTime, t)
}

func EndTimeAt(t any) entities.DocumentDecoratorFunc {
	return entities.DateTime(EndTime, t)
}

func ActionEnvironment(environment any) entities.DocumentDecoratorFunc {
	return entities.Ref(Environment, environment)
}

func ActionPerformer(performer any) entities.DocumentDecoratorFunc {
	return entities.Ref(Performer, performer)
}

func ActionInstrument(instruments any) entities.DocumentDecoratorFunc {
	return entities.Ref(Instrument, instruments)
}

func ActionLocation(locations any) entities.DocumentDecoratorFunc {
	return entities.Ref(Location, locations)
}

func ActionResults(results any) entities.DocumentDecoratorFunc {
	return entities.Ref(Result, results)
}

func ActionObjects(objects any) entities.DocumentDecoratorFunc {
	return entities.Ref(Object, objects)
}
