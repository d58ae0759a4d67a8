package errdef

// Kind is the discriminant of [*Error].
//
// Kinds are ranked in two tiers. The fatal tier marks violations nobody is expected to recover from;
// the unchecked tier marks misuse by the caller which is still surfaced as-is.
type Kind uint8

const (
	KindUnknown   Kind = iota
	KindInternal       // internal invariant violation.
	KindFatal          // unrecoverable failure of the environment.
	KindAssertion      // code path that must not be reached.
	KindRuntime        // unchecked runtime failure.
	KindState          // operation not permitted in the current state.
	KindArgument       // caller supplied argument violates a precondition.
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal error"
	case KindFatal:
		return "fatal error"
	case KindAssertion:
		return "assertion error"
	case KindRuntime:
		return "runtime error"
	case KindState:
		return "illegal state"
	case KindArgument:
		return "illegal argument"
	default:
		return "unknown"
	}
}

// Error implements error so that a Kind can be used as the target of [errors.Is].
func (k Kind) Error() string {
	return k.String()
}

// Fatal reports whether k belongs to the fatal tier.
func (k Kind) Fatal() bool {
	switch k {
	case KindInternal, KindFatal, KindAssertion:
		return true
	}
	return false
}

// Unchecked reports whether k belongs to the unchecked runtime failure tier.
func (k Kind) Unchecked() bool {
	switch k {
	case KindRuntime, KindState, KindArgument:
		return true
	}
	return false
}
