package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/sandwich-go/corrivalry/errs"
)

// HeaderOutcome is the three-way classification headers.rs's Headers enum
// produces from a response's header map.
type HeaderOutcome int

const (
	// OutcomeNone means the route is unlimited: no per-bucket headers and
	// no global flag were present.
	OutcomeNone HeaderOutcome = iota
	// OutcomeGlobalLimited means a 429 with the global flag set arrived
	// without per-bucket headers.
	OutcomeGlobalLimited
	// OutcomePresent means a full, well-formed set of per-bucket headers
	// was present.
	OutcomePresent
)

// Headers is the parsed result of one response's rate-limit headers.
// ResetMS/ResetAfterMS are integer milliseconds, converted from the
// server's float-seconds encoding by ceil(value*1000), matching
// headers.rs's parse_map.
type Headers struct {
	Outcome      HeaderOutcome
	Bucket       string
	Limit        int
	Remaining    int
	ResetMS      int64
	ResetAfterMS int64
	Global       bool
}

const (
	headerBucket     = "x-ratelimit-bucket"
	headerGlobal     = "x-ratelimit-global"
	headerLimit      = "x-ratelimit-limit"
	headerRemaining  = "x-ratelimit-remaining"
	headerReset      = "x-ratelimit-reset"
	headerResetAfter = "x-ratelimit-reset-after"
)

// ParseHeaders classifies h per spec §4.3's "Header parsing" section. Any
// partial/malformed case — some per-bucket headers present but one fails
// to parse — returns a non-nil *errs.Error as diagnostic telemetry; the
// request itself is never considered failed because of it. On error the
// returned Headers is empty, so callers should log the error and treat
// the bucket as still-unknown.
func ParseHeaders(h http.Header) (Headers, *errs.Error) {
	var global bool
	if h.Get(headerGlobal) != "" {
		b, err := headerBool("ratelimit.ParseHeaders", h, headerGlobal)
		if err != nil {
			return Headers{}, err
		}
		global = b
	}
	hasBucketHeaders := h.Get(headerLimit) != "" || h.Get(headerRemaining) != "" ||
		h.Get(headerReset) != "" || h.Get(headerBucket) != "" ||
		(h.Get(headerResetAfter) != "" && !global)

	if !hasBucketHeaders {
		if global {
			resetAfter, err := headerFloatMS("ratelimit.ParseHeaders", h, headerResetAfter)
			if err != nil {
				return Headers{}, err
			}
			return Headers{Outcome: OutcomeGlobalLimited, Global: true, ResetAfterMS: resetAfter}, nil
		}
		return Headers{Outcome: OutcomeNone}, nil
	}

	bucket, err := headerString("ratelimit.ParseHeaders", h, headerBucket)
	if err != nil {
		return Headers{}, err
	}
	limit, err := headerInt("ratelimit.ParseHeaders", h, headerLimit)
	if err != nil {
		return Headers{}, err
	}
	remaining, err := headerInt("ratelimit.ParseHeaders", h, headerRemaining)
	if err != nil {
		return Headers{}, err
	}
	reset, err := headerFloatMS("ratelimit.ParseHeaders", h, headerReset)
	if err != nil {
		return Headers{}, err
	}
	resetAfter, err := headerFloatMS("ratelimit.ParseHeaders", h, headerResetAfter)
	if err != nil {
		return Headers{}, err
	}

	return Headers{
		Outcome:      OutcomePresent,
		Bucket:       bucket,
		Limit:        limit,
		Remaining:    remaining,
		ResetMS:      reset,
		ResetAfterMS: resetAfter,
		Global:       global,
	}, nil
}

func headerString(op string, h http.Header, name string) (string, *errs.Error) {
	v, ok := h[http.CanonicalHeaderKey(name)]
	if !ok || len(v) == 0 {
		return "", errs.NewHeaderParse(op, name, errs.HeaderMissing, errMissing)
	}
	if !utf8.ValidString(v[0]) {
		return "", errs.NewHeaderParse(op, name, errs.HeaderNotUTF8, errNotUTF8)
	}
	return v[0], nil
}

func headerInt(op string, h http.Header, name string) (int, *errs.Error) {
	s, err := headerString(op, h, name)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.Atoi(s)
	if perr != nil {
		return 0, errs.NewHeaderParse(op, name, errs.HeaderParseInt, perr)
	}
	return n, nil
}

func headerFloatMS(op string, h http.Header, name string) (int64, *errs.Error) {
	s, err := headerString(op, h, name)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, errs.NewHeaderParse(op, name, errs.HeaderParseFloat, perr)
	}
	return int64(math.Ceil(f * 1000)), nil
}

func headerBool(op string, h http.Header, name string) (bool, *errs.Error) {
	s, err := headerString(op, h, name)
	if err != nil {
		return false, err
	}
	b, perr := strconv.ParseBool(s)
	if perr != nil {
		return false, errs.NewHeaderParse(op, name, errs.HeaderParseBool, perr)
	}
	return b, nil
}

var (
	errMissing = simpleErr("header missing")
	errNotUTF8 = simpleErr("header value is not valid utf-8")
)

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
