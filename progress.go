/*
Copyright © 2020 the esoreader authors.
This file is part of esoreader.

esoreader is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

esoreader is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with esoreader.  If not, see <http://www.gnu.org/licenses/>.
*/

package esoreader

import "github.com/sirupsen/logrus"

// A ProgressSink is the parser's sole channel to the outside world
// for progress reporting and cooperative cancellation. It is advisory,
// never on the correctness path, except for Cancelled, which the
// parser surfaces as soon as Tick reports it.
type ProgressSink interface {
	// SetMaximum records the expected number of Tick calls, usually
	// ceil(line-count / chunk-size).
	SetMaximum(n int)

	// Tick is called once per chunk boundary with the number of lines
	// consumed so far. It returns true if the caller has requested
	// cancellation.
	Tick(lineCounter int) (cancel bool)

	// LogSection announces the start of a named phase (ParseFile uses
	// "preamble", "dictionary" and "data") for operator-facing logs.
	LogSection(name string)

	// LineCounter returns the number of lines reported through the
	// most recent Tick call.
	LineCounter() int
}

// NopSink is a ProgressSink that does nothing and never cancels. It
// is the default used by tests and by callers that don't care about
// progress reporting.
type NopSink struct {
	lines int
}

// NewNopSink returns a ready-to-use NopSink.
func NewNopSink() *NopSink { return &NopSink{} }

// SetMaximum implements ProgressSink.
func (s *NopSink) SetMaximum(int) {}

// Tick implements ProgressSink.
func (s *NopSink) Tick(lineCounter int) bool {
	s.lines = lineCounter
	return false
}

// LogSection implements ProgressSink.
func (s *NopSink) LogSection(string) {}

// LineCounter implements ProgressSink.
func (s *NopSink) LineCounter() int { return s.lines }

// LogrusSink is an operator-facing ProgressSink, reporting
// progress and section changes through a *logrus.Logger the way the
// teacher's service-facing components (cmd/inmapweb, emissions/slca)
// log through logrus rather than the standard library logger.
type LogrusSink struct {
	Logger *logrus.Logger

	// Cancel, if non-nil, is polled on every Tick call. A sink with a
	// nil Cancel never cancels.
	Cancel func() bool

	max   int
	ticks int
	lines int
}

// NewLogrusSink returns a LogrusSink logging through logger. If logger
// is nil, logrus.StandardLogger() is used.
func NewLogrusSink(logger *logrus.Logger) *LogrusSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusSink{Logger: logger}
}

// SetMaximum implements ProgressSink.
func (s *LogrusSink) SetMaximum(n int) {
	s.max = n
	s.Logger.WithField("chunks", n).Debug("esoreader: expected progress chunks")
}

// Tick implements ProgressSink.
func (s *LogrusSink) Tick(lineCounter int) bool {
	s.ticks++
	s.lines = lineCounter
	s.Logger.WithFields(logrus.Fields{
		"chunk": s.ticks,
		"of":    s.max,
		"lines": lineCounter,
	}).Debug("esoreader: progress")
	if s.Cancel != nil {
		return s.Cancel()
	}
	return false
}

// LogSection implements ProgressSink.
func (s *LogrusSink) LogSection(name string) {
	s.Logger.WithField("section", name).Info("esoreader: entering section")
}

// LineCounter implements ProgressSink.
func (s *LogrusSink) LineCounter() int { return s.lines }
