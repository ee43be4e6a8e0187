// Package errs defines the categorised error taxonomy shared by the cache,
// cluster and ratelimit packages. Every error surfaced across a package
// boundary is wrapped in an *Error so callers can switch on Kind instead of
// comparing against package-level sentinels.
package errs

import "fmt"

// Kind categorises an error the way spec §7 describes: by where it can be
// recovered from, not by concrete Go type.
type Kind int

const (
	// KindConfig is a configuration error reported synchronously at builder
	// call time, e.g. an out-of-range large_threshold or a bad shard range.
	KindConfig Kind = iota
	// KindStartup is a cluster-build-time failure: gateway discovery HTTP
	// failure, credential rejection at identify.
	KindStartup
	// KindHeaderParse is a malformed rate-limit response header set. The
	// request that produced it still succeeds; this is diagnostic only.
	KindHeaderParse
	// KindShardTransient covers connection drops and resumes handled inside
	// a shard. Never surfaced to cluster callers; kept here for logging call
	// sites that still want a typed value.
	KindShardTransient
	// KindEventApplication marks a structurally impossible cache update
	// (e.g. MemberRemove for an absent member). Always a silent no-op.
	KindEventApplication
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindStartup:
		return "startup"
	case KindHeaderParse:
		return "header_parse"
	case KindShardTransient:
		return "shard_transient"
	case KindEventApplication:
		return "event_application"
	default:
		return "unknown"
	}
}

// HeaderParseSubKind distinguishes the ways header parsing can fail, per
// spec §7's "Sub-kinds: header-missing (when a sibling was present),
// header-not-utf8, parse-bool/float/int text".
type HeaderParseSubKind int

const (
	HeaderMissing HeaderParseSubKind = iota
	HeaderNotUTF8
	HeaderParseBool
	HeaderParseFloat
	HeaderParseInt
)

func (s HeaderParseSubKind) String() string {
	switch s {
	case HeaderMissing:
		return "missing"
	case HeaderNotUTF8:
		return "not_utf8"
	case HeaderParseBool:
		return "parse_bool"
	case HeaderParseFloat:
		return "parse_float"
	case HeaderParseInt:
		return "parse_int"
	default:
		return "unknown"
	}
}

// Error is the single error type the core returns across package
// boundaries. Op names the failing operation (e.g. "cluster.Build",
// "ratelimit.ParseHeaders") so logs stay greppable without string matching
// on Err.
type Error struct {
	Kind    Kind
	Op      string
	Header  string             // header name, only set for KindHeaderParse
	SubKind HeaderParseSubKind // only meaningful for KindHeaderParse
	Err     error
}

func (e *Error) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("%s: %s (%s %q): %v", e.Op, e.Kind, e.SubKind, e.Header, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a plain categorised error with no header context.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewHeaderParse builds a KindHeaderParse error carrying the offending
// header name and parse sub-kind.
func NewHeaderParse(op, header string, sub HeaderParseSubKind, err error) *Error {
	return &Error{Kind: KindHeaderParse, Op: op, Header: header, SubKind: sub, Err: err}
}

// Is reports whether err is an *Error of the given Kind, unwrapping as
// needed. It lets callers write `errs.Is(err, errs.KindConfig)`.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
