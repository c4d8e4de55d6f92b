package domain

type ReactionOutcome int

const (
	ReactionAdded ReactionOutcome = iota
	ReactionAlreadyPresent
	ReactionRemoved
	ReactionNotPresent
)

func (o ReactionOutcome) String() string {
	switch o {
	case ReactionAdded:
		return "added"
	case ReactionAlreadyPresent:
		return "already_present"
	case ReactionRemoved:
		return "removed"
	case ReactionNotPresent:
		return "not_present"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome altered the reaction set.
func (o ReactionOutcome) Changed() bool {
	return o == ReactionAdded || o == ReactionRemoved
}
