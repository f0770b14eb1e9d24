package engine

import (
	"errors"
	"fmt"
)

// ErrNoActiveSession is returned when an action is submitted on a closed or
// never-opened session. It indicates a sequencing bug in the caller, not a
// transport problem.
var ErrNoActiveSession = errors.New("no active session")

// SessionStartError means a new session could not be opened or its first
// reply was empty or unparsable. It is fatal to that attempt; the caller
// surfaces it and the user retries character creation. Never retried here.
type SessionStartError struct {
	Err error
}

func (e *SessionStartError) Error() string {
	return fmt.Sprintf("start session: %v", e.Err)
}

func (e *SessionStartError) Unwrap() error { return e.Err }

// TurnExchangeError means a mid-game turn failed on transport, an empty
// reply, or malformed JSON. It is recoverable: prior state is preserved and
// the user may resubmit the same action. Never retried here.
type TurnExchangeError struct {
	Err error
}

func (e *TurnExchangeError) Error() string {
	return fmt.Sprintf("turn exchange: %v", e.Err)
}

func (e *TurnExchangeError) Unwrap() error { return e.Err }
