package genres

// StylePreferences is the server's boolean-per-genre record. The field set
// and JSON names are fixed by the remote API.
type StylePreferences struct {
	Romance     bool `json:"romance"`
	Fantasy     bool `json:"fantasy"`
	SciFi       bool `json:"sciFi"`
	Horror      bool `json:"horror"`
	Mystery     bool `json:"mystery"`
	Thriller    bool `json:"thriller"`
	Psychology  bool `json:"psychology"`
	Inspiration bool `json:"inspiration"`
	Comedy      bool `json:"comedy"`
	Action      bool `json:"action"`
	Adventure   bool `json:"adventure"`
	Comics      bool `json:"comics"`
	Childrens   bool `json:"childrens"`
	Art         bool `json:"art"`
	Food        bool `json:"food"`
	Biography   bool `json:"biography"`
	Science     bool `json:"science"`
	Technology  bool `json:"technology"`
	HowTo       bool `json:"howto"`
	Travel      bool `json:"travel"`
	EpicFantasy bool `json:"epicfantasy"`
}

// field returns a pointer to the flag for k, or nil for an unknown key.
func (p *StylePreferences) field(k Key) *bool {
	switch k {
	case Romance:
		return &p.Romance
	case Fantasy:
		return &p.Fantasy
	case SciFi:
		return &p.SciFi
	case Horror:
		return &p.Horror
	case Mystery:
		return &p.Mystery
	case Thriller:
		return &p.Thriller
	case Psychology:
		return &p.Psychology
	case Inspiration:
		return &p.Inspiration
	case Comedy:
		return &p.Comedy
	case Action:
		return &p.Action
	case Adventure:
		return &p.Adventure
	case Comics:
		return &p.Comics
	case Childrens:
		return &p.Childrens
	case Art:
		return &p.Art
	case Food:
		return &p.Food
	case Biography:
		return &p.Biography
	case Science:
		return &p.Science
	case Technology:
		return &p.Technology
	case HowTo:
		return &p.HowTo
	case Travel:
		return &p.Travel
	case EpicFantasy:
		return &p.EpicFantasy
	}
	return nil
}

// Get reports the flag for k. Unknown keys read as false.
func (p StylePreferences) Get(k Key) bool {
	if f := p.field(k); f != nil {
		return *f
	}
	return false
}

// Set updates the flag for k and reports whether k is known.
func (p *StylePreferences) Set(k Key, v bool) bool {
	f := p.field(k)
	if f == nil {
		return false
	}
	*f = v
	return true
}

// FromLabels builds preferences from onboarding labels. Labels that map to
// no key are returned separately so callers can log them.
func FromLabels(labels []string) (StylePreferences, []string) {
	var (
		p       StylePreferences
		unknown []string
	)
	for _, l := range labels {
		k, ok := KeyForLabel(l)
		if !ok {
			unknown = append(unknown, l)
			continue
		}
		p.Set(k, true)
	}
	return p, unknown
}

// ToLabels lists the canonical labels of the set flags in table order.
// Flags without a label (Technology, EpicFantasy) are not reported.
func (p StylePreferences) ToLabels() []string {
	out := make([]string, 0)
	for _, e := range Table {
		if p.Get(e.Key) {
			out = append(out, e.Label)
		}
	}
	return out
}
