package checkout

import "log"

// state tracks where a submission attempt is in its lifecycle.
type state string

const (
	stateIdle           state = "idle"
	stateValidating     state = "validating"
	stateSubmitting     state = "submitting"
	stateOrderCreated   state = "order_created"
	stateEmailAttempted state = "email_attempted"
	stateDone           state = "done"
	stateFailed         state = "failed"
)

// attempt is the per-submission state machine. It exists to make the flow's
// progression explicit and observable in the logs; transitions always move
// forward, and an attempt ends in done, failed, or back at idle when
// validation rejects the input.
type attempt struct {
	userID string
	state  state
}

func newAttempt(userID string) *attempt {
	return &attempt{userID: userID, state: stateIdle}
}

func (a *attempt) to(next state) {
	a.state = next
	log.Printf("[Checkout] user %s: %s", a.userID, next)
}

// reject returns the attempt to idle; the caller gets the reason and the
// user can correct and resubmit.
func (a *attempt) reject(err error) {
	a.state = stateIdle
	log.Printf("[Checkout] user %s: rejected: %v", a.userID, err)
}

// fail marks the attempt failed after submission started.
func (a *attempt) fail(err error) {
	a.state = stateFailed
	log.Printf("[Checkout] user %s: failed: %v", a.userID, err)
}
