package exact

// Sigma is a three-valued truth value ordered Bot < NA < Top.
type Sigma int8

const (
	Bot Sigma = iota // definitely false
	NA               // not yet decided
	Top              // definitely true
)

func (s Sigma) String() string {
	switch s {
	case Bot:
		return "Bot"
	case Top:
		return "Top"
	}
	return "NA"
}

// FromWitnesses combines a lower witness (the relation holds for every
// point of the operands) and an upper witness (it holds for some point).
// (true, true) is Top, (false, false) is Bot, (false, true) is NA and
// (true, false) is a *ContradictionError.
func FromWitnesses(lower, upper bool) (Sigma, error) {
	switch {
	case lower && upper:
		return Top, nil
	case !lower && !upper:
		return Bot, nil
	case lower:
		return NA, &ContradictionError{Lower: lower, Upper: upper}
	}
	return NA, nil
}

// And is Kleene conjunction.
func (s Sigma) And(o Sigma) Sigma {
	if o < s {
		return o
	}
	return s
}

// Or is Kleene disjunction.
func (s Sigma) Or(o Sigma) Sigma {
	if o > s {
		return o
	}
	return s
}

// Not swaps Top and Bot.
func (s Sigma) Not() Sigma {
	return Top - s
}
