package filter

// Decision is the answer of a filter about one attribute of the handshake.
type Decision int

const (
	// Pass means filter has no opinion.
	Pass Decision = iota

	// Allow admits the attribute, overriding any Block.
	Allow

	// Block rejects the attribute.
	Block

	// NeedData means filter can't decide until more of the handshake is known.
	NeedData
)

func (d Decision) String() string {
	switch d {
	case Pass:
		return "pass"
	case Allow:
		return "allow"
	case Block:
		return "block"
	case NeedData:
		return "need-data"
	default:
		return "unknown"
	}
}

// Combine merges decisions of many filters into one.
// Allow wins over NeedData, NeedData over Block and Block over Pass.
// Order of decisions doesn't matter.
func Combine(decisions ...Decision) Decision {
	var allow, needData, block bool
	for _, d := range decisions {
		switch d {
		case Allow:
			allow = true
		case NeedData:
			needData = true
		case Block:
			block = true
		}
	}

	switch {
	case allow:
		return Allow
	case needData:
		return NeedData
	case block:
		return Block
	default:
		return Pass
	}
}
