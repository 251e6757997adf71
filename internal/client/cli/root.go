package cli

import (
	"fmt"
	"time"
)

// nowFn is a test seam for the status line clock.
var nowFn = time.Now

// getStatus renders the prompt suffix: the signed-in email and, when the
// token is a JWT, whether it has expired.
func (a *App) getStatus() string {
	st := a.store.State()
	if st.User == nil {
		if st.OnboardingCompleted {
			return "(guest, onboarded)"
		}
		return ""
	}

	s := st.User.Email
	if exp, ok := a.store.TokenExpiry(); ok {
		if exp.Before(nowFn()) {
			s += ", token expired"
		} else {
			s += ", token until " + exp.UTC().Format("2006-01-02 15:04") + " UTC"
		}
	}
	return fmt.Sprintf("(%s)", s)
}
