////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package event

// Callback defines the callback functions for client event reports
type Callback func(priority int, category, evtType, details string)

// Reporter reporting api (used internally)
type Reporter interface {
	Report(priority int, category, evtType, details string)
}

// Manager is a Reporter that delivers events to registered callbacks on its
// own goroutine.
type Manager interface {
	Reporter
	RegisterEventCallback(name string, myFunc Callback) error
	UnregisterEventCallback(name string)
	Start()
	Stop()
}

// OrNop returns r, or a Reporter that drops everything when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}

type nopReporter struct{}

func (nopReporter) Report(int, string, string, string) {}
