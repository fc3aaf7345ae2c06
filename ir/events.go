package ir

const (
	EventAppend     = "append"
	EventCreate     = "create"
	EventClear      = "clear"
	EventDelete     = "delete"
	EventSet        = "set"
	EventPatch      = "patch"
	EventPatchOrder = "patchOrder"
	EventRename     = "rename"
	EventReload     = "reload"
	EventChange     = "change"
)

// Listener receives the node an event fired on and the event arguments.
type Listener func(y *Node, args ...any)

// ListenerID identifies a subscription for Off.
type ListenerID int

type eventTable struct {
	next      ListenerID
	listeners map[string][]subscription
}

type subscription struct {
	id ListenerID
	fn Listener
}

// On subscribes fn to event on y. Listeners run synchronously, in
// subscription order, after the mutation that fired them.
func (y *Node) On(event string, fn Listener) ListenerID {
	if y.events == nil {
		y.events = &eventTable{listeners: map[string][]subscription{}}
	}
	y.events.next++
	id := y.events.next
	y.events.listeners[event] = append(y.events.listeners[event], subscription{id: id, fn: fn})
	return id
}

// Off removes the subscription id from event.
func (y *Node) Off(event string, id ListenerID) *Node {
	if y.events == nil {
		return y
	}
	subs := y.events.listeners[event]
	for i := range subs {
		if subs[i].id == id {
			y.events.listeners[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	return y
}

// ClearListeners removes the listeners of the given events, or of every
// event when none are given.
func (y *Node) ClearListeners(events ...string) *Node {
	if y.events == nil {
		return y
	}
	if len(events) == 0 {
		y.events.listeners = map[string][]subscription{}
		return y
	}
	for _, ev := range events {
		delete(y.events.listeners, ev)
	}
	return y
}

// Listeners returns the number of listeners subscribed to event.
func (y *Node) Listeners(event string) int {
	if y.events == nil {
		return 0
	}
	return len(y.events.listeners[event])
}

// Trigger calls the listeners of event. A panicking listener propagates to
// the caller of Trigger.
func (y *Node) Trigger(event string, args ...any) *Node {
	if y.events == nil {
		return y
	}
	subs := y.events.listeners[event]
	if len(subs) == 0 {
		return y
	}
	// listeners may subscribe or unsubscribe while running
	for _, sub := range append([]subscription(nil), subs...) {
		sub.fn(y, args...)
	}
	return y
}
