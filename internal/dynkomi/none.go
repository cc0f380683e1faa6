package dynkomi

// None never touches komi.
type None struct {
	base
}

// NewNone builds the None strategy. It accepts no options.
func NewNone(sc SearchContext, args string) (*None, error) {
	if args != "" {
		return nil, &ConfigError{Method: MethodNone, Token: args, Reason: "method accepts no arguments"}
	}
	return &None{base: newBase(sc, MethodNone)}, nil
}

func (*None) Name() string { return MethodNone }

func (*None) PerMove(Board, Tree) float64 { return 0 }
