package models

// Snapshot is the durable subset of the session. Loading, Error and the
// onboarding scratch buffer are deliberately absent.
type Snapshot struct {
	User                *User  `json:"user"`
	Token               string `json:"token"`
	IsAuthenticated     bool   `json:"isAuthenticated"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}

// State is the full read model of the session store.
type State struct {
	User                *User
	Token               string
	IsAuthenticated     bool
	OnboardingCompleted bool
	Loading             bool
	Error               string
	TempUserData        *TempOnboardingData
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.User = s.User.Clone()
	s.TempUserData = s.TempUserData.Clone()
	return s
}

// Snapshot extracts the persisted fields of s.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		User:                s.User.Clone(),
		Token:               s.Token,
		IsAuthenticated:     s.IsAuthenticated,
		OnboardingCompleted: s.OnboardingCompleted,
	}
}

// IsZero reports whether the snapshot equals the logged-out default.
func (s Snapshot) IsZero() bool {
	return s.User == nil && s.Token == "" && !s.IsAuthenticated && !s.OnboardingCompleted
}

// State restores a State from the snapshot. Non-persisted fields get their
// zero values. A snapshot claiming authentication without a user is
// normalized to logged out.
func (s Snapshot) State() State {
	st := State{
		User:                s.User.Clone(),
		Token:               s.Token,
		IsAuthenticated:     s.User != nil,
		OnboardingCompleted: s.OnboardingCompleted,
	}
	if st.User != nil {
		st.OnboardingCompleted = st.User.OnboardingCompleted
	}
	return st
}
