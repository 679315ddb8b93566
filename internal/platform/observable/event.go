package observable

// Event is a one-shot value. Once raised it stays pending, so a consumer that
// re-subscribes or re-renders sees it again, until the consumer acknowledges
// it with Ack.
type Event[T any] struct {
	state *Value[Pending[T]]
}

// Pending is the observed state of an Event.
type Pending[T any] struct {
	Value T
	Set   bool
}

func NewEvent[T any]() *Event[T] {
	return &Event[T]{state: NewValue(Pending[T]{})}
}

func (e *Event[T]) Raise(v T) {
	e.state.Set(Pending[T]{Value: v, Set: true})
}

// Peek returns the pending value without consuming it.
func (e *Event[T]) Peek() (T, bool) {
	p := e.state.Get()
	return p.Value, p.Set
}

// Ack clears a pending value. Acknowledging an idle event is a no-op and
// does not notify subscribers.
func (e *Event[T]) Ack() {
	e.state.Update(func(cur Pending[T]) (Pending[T], bool) {
		return Pending[T]{}, cur.Set
	})
}

// Consume returns the pending value and acknowledges it in one step.
func (e *Event[T]) Consume() (T, bool) {
	var taken Pending[T]
	e.state.Update(func(cur Pending[T]) (Pending[T], bool) {
		taken = cur
		return Pending[T]{}, cur.Set
	})
	return taken.Value, taken.Set
}

func (e *Event[T]) Subscribe(fn func(Pending[T])) func() {
	return e.state.Subscribe(fn)
}

// Flag is a one-shot boolean: Raise sets it, Ack resets it to false.
type Flag struct {
	state *Value[bool]
}

func NewFlag() *Flag {
	return &Flag{state: NewValue(false)}
}

func (f *Flag) Raise()    { f.state.Set(true) }
func (f *Flag) Get() bool { return f.state.Get() }

func (f *Flag) Ack() {
	f.state.Update(func(cur bool) (bool, bool) {
		return false, cur
	})
}

func (f *Flag) Subscribe(fn func(bool)) func() {
	return f.state.Subscribe(fn)
}
