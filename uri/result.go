package uri

// Outcome classifies a validation. Everything except Resolved is a normal,
// silent rejection.
type Outcome int

const (
	Resolved Outcome = iota
	NoToken
	NoGrammarMatch
	EmptyComponent
	SchemeNotAccepted
	UnresolvedRelative
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case NoToken:
		return "no token"
	case NoGrammarMatch:
		return "no grammar match"
	case EmptyComponent:
		return "empty component"
	case SchemeNotAccepted:
		return "scheme not accepted"
	case UnresolvedRelative:
		return "unresolved relative"
	default:
		return "unknown"
	}
}

// Method names the rule that produced a resolved URI.
type Method string

const (
	ByScheme         Method = "scheme"
	ByWWW            Method = "www"
	ByAbsolutePath   Method = "absolute"
	ByDocument       Method = "document"
	ByRemoteDocument Method = "remote-document"
	ByInclude        Method = "include"
)

// Result is the outcome of Validate. URI is set only when Outcome is
// Resolved.
type Result struct {
	URI     string
	Outcome Outcome
	Method  Method
}

func (r Result) OK() bool {
	return r.Outcome == Resolved
}

func reject(o Outcome) Result {
	return Result{Outcome: o}
}

func resolved(uri string, m Method) Result {
	return Result{URI: uri, Outcome: Resolved, Method: m}
}
