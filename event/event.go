////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package event

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

const eventQueueSize = 1000

// ReportableEvent is used to surface events to client users.
type reportableEvent struct {
	Priority  int
	Category  string
	EventType string
	Details   string
}

// String stringer interace implementation
func (e reportableEvent) String() string {
	return fmt.Sprintf("Event(%d, %s, %s, %s)", e.Priority, e.Category,
		e.EventType, e.Details)
}

// Holds state for the event reporting system
type eventManager struct {
	eventCh  chan reportableEvent
	eventCbs sync.Map

	quit    chan struct{}
	done    chan struct{}
	running bool
	mux     sync.Mutex
}

// NewEventManager returns a stopped Manager. Events reported before Start are
// queued.
func NewEventManager() Manager {
	return newEventManager()
}

func newEventManager() *eventManager {
	return &eventManager{
		eventCh: make(chan reportableEvent, eventQueueSize),
	}
}

// Report reports an event from the client to api users, providing a
// priority, category, eventType, and details
func (e *eventManager) Report(priority int, category, evtType, details string) {
	re := reportableEvent{
		Priority:  priority,
		Category:  category,
		EventType: evtType,
		Details:   details,
	}
	select {
	case e.eventCh <- re:
		jww.TRACE.Printf("Event reported: %s", re)
	default:
		jww.ERROR.Printf("Event Queue full, unable to report: %s", re)
	}
}

// RegisterEventCallback records the given function to receive
// ReportableEvent objects under the given name.
func (e *eventManager) RegisterEventCallback(name string,
	myFunc Callback) error {
	_, existsAlready := e.eventCbs.LoadOrStore(name, myFunc)
	if existsAlready {
		return errors.Errorf("Key %s already exists as event callback",
			name)
	}
	return nil
}

// UnregisterEventCallback deletes the callback identified by name.
func (e *eventManager) UnregisterEventCallback(name string) {
	e.eventCbs.Delete(name)
}

// Start launches the delivery goroutine. Calling it twice is a no-op.
func (e *eventManager) Start() {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.running {
		return
	}
	e.quit = make(chan struct{})
	e.done = make(chan struct{})
	e.running = true
	go e.reportEventsHandler(e.quit, e.done)
}

// Stop halts delivery and waits for the goroutine to exit. Events reported
// before Stop are delivered before it returns.
func (e *eventManager) Stop() {
	e.mux.Lock()
	defer e.mux.Unlock()
	if !e.running {
		return
	}
	close(e.quit)
	<-e.done
	e.running = false
}

// reportEventsHandler reports events to every registered event callback
func (e *eventManager) reportEventsHandler(quit, done chan struct{}) {
	jww.DEBUG.Print("reportEventsHandler routine started")
	defer close(done)
	for {
		select {
		case <-quit:
			jww.DEBUG.Printf("Stopping reportEventsHandler")
			e.drain()
			return
		case evt := <-e.eventCh:
			e.deliver(evt)
		}
	}
}

// drain delivers whatever is queued without waiting for more
func (e *eventManager) drain() {
	for {
		select {
		case evt := <-e.eventCh:
			e.deliver(evt)
		default:
			return
		}
	}
}

func (e *eventManager) deliver(evt reportableEvent) {
	jww.TRACE.Printf("Received event: %s", evt)
	// NOTE: callbacks run inline; a slow callback backs up the
	// queue and later reports get dropped with an error log.
	e.eventCbs.Range(func(name, myFunc interface{}) bool {
		f := myFunc.(Callback)
		f(evt.Priority, evt.Category, evt.EventType, evt.Details)
		return true
	})
}
