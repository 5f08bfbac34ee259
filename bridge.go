package testlogging

import "strings"

// Field names shared by the zerolog and zap bridges.
const (
	fieldEventID      = "event_id"
	fieldEventName    = "event_name"
	fieldTemplate     = "template"
	fieldScopes       = "scopes"
	fieldError        = "error"
	fieldErrorChain   = "error_chain"
	fieldErrorRoot    = "error_root"
	fieldErrorHistory = "error_history"
	fieldErrorOps     = "error_ops"
	fieldErrorRootOp  = "error_root_op"
)

// scopeLabels renders each open scope state as a single label, innermost
// first. Structured states are flattened into "a; b; c".
func scopeLabels(snapshot []any, cfg *Config) []string {
	if len(snapshot) == 0 {
		return nil
	}
	labels := make([]string, 0, len(snapshot))
	for _, state := range snapshot {
		inline, structured := describeScopeState(state)
		if structured != nil {
			inline = strings.Join(structured, "; ")
		}
		labels = append(labels, cfg.Redact(inline))
	}
	return labels
}

// errorDetails is the chain enrichment written next to an error field.
type errorDetails struct {
	text    string
	chain   []string
	ops     []string
	root    string
	rootOp  string
	history string
}

func newErrorDetails(err error, cfg *Config) errorDetails {
	chain, ops, root, rootOp := buildErrorChain(err)
	for i := range chain {
		chain[i] = cfg.Redact(chain[i])
	}
	return errorDetails{
		text:    cfg.Redact(err.Error()),
		chain:   chain,
		ops:     ops,
		root:    cfg.Redact(root),
		rootOp:  rootOp,
		history: joinChain(chain),
	}
}

// stateValue redacts string values and leaves everything else untouched.
func stateValue(v any, cfg *Config) any {
	if s, ok := v.(string); ok {
		return cfg.Redact(s)
	}
	return v
}
