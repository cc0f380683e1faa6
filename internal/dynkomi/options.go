package dynkomi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownMethod is returned by New for an unrecognised strategy name.
var ErrUnknownMethod = errors.New("unknown dynkomi method")

// ConfigError reports a malformed strategy option string. It is only
// ever produced while constructing a strategy.
type ConfigError struct {
	Method string
	Token  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dynkomi %s: %s: %q", e.Method, e.Reason, e.Token)
}

// option is one name[=value] token of an option string.
type option struct {
	token    string
	name     string // lowercased
	value    string
	hasValue bool
}

// parseOptions splits "name[=value]:name[=value]..." into tokens.
// An empty string yields no options.
func parseOptions(method, arg string) ([]option, error) {
	if arg == "" {
		return nil, nil
	}
	var opts []option
	for _, tok := range strings.Split(arg, ":") {
		name, value, hasValue := strings.Cut(tok, "=")
		if name == "" {
			return nil, &ConfigError{Method: method, Token: tok, Reason: "empty option name"}
		}
		opts = append(opts, option{
			token:    tok,
			name:     strings.ToLower(name),
			value:    value,
			hasValue: hasValue,
		})
	}
	return opts, nil
}

// optionReader converts option values, remembering the first failure so
// option switches can stay flat.
type optionReader struct {
	method string
	err    error
}

func (r *optionReader) fail(o option, reason string) {
	if r.err == nil {
		r.err = &ConfigError{Method: r.method, Token: o.token, Reason: reason}
	}
}

// unknown flags an option that is not recognised or lacks a value.
func (r *optionReader) unknown(o option) {
	r.fail(o, "invalid dynkomi argument or missing value")
}

func (r *optionReader) requireValue(o option) bool {
	if !o.hasValue || o.value == "" {
		r.unknown(o)
		return false
	}
	return true
}

func (r *optionReader) intValue(o option) int {
	if !r.requireValue(o) {
		return 0
	}
	n, err := strconv.Atoi(o.value)
	if err != nil {
		r.fail(o, "invalid integer")
	}
	return n
}

func (r *optionReader) floatValue(o option) float64 {
	if !r.requireValue(o) {
		return 0
	}
	f, err := strconv.ParseFloat(o.value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.fail(o, "invalid number")
		return 0
	}
	return f
}

// boolValue treats a bare flag as true and any integer value as its truth.
func (r *optionReader) boolValue(o option) bool {
	if !o.hasValue {
		return true
	}
	n, err := strconv.Atoi(o.value)
	if err != nil {
		r.fail(o, "invalid boolean")
		return false
	}
	return n != 0
}

// choice returns the lowercased value, which must be one of allowed.
func (r *optionReader) choice(o option, what string, allowed ...string) string {
	if !r.requireValue(o) {
		return ""
	}
	v := strings.ToLower(o.value)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	r.fail(o, "invalid "+what)
	return ""
}
