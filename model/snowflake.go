package model

import (
	"strconv"
	"time"
)

// discordEpoch is the first millisecond of 2015, the reference point every
// snowflake timestamp is computed relative to.
const discordEpoch int64 = 1420070400000

// Snowflake is the platform's 64-bit identifier type. Every entity in the
// cache is keyed by one.
type Snowflake uint64

// ParseSnowflake parses the platform's string-encoded identifiers, which
// travel over the wire as JSON strings to avoid precision loss in clients
// that decode to float64.
func ParseSnowflake(s string) (Snowflake, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Snowflake(v), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalJSON encodes the snowflake as a quoted string, matching the wire
// format Discord-style gateways use.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted-string and bare-number encodings.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return err
	}
	*s = Snowflake(v)
	return nil
}

// CreationTime returns the creation timestamp encoded in the snowflake.
func (s Snowflake) CreationTime() time.Time {
	ms := (int64(s) >> 22) + discordEpoch
	return time.Unix(0, ms*int64(time.Millisecond))
}
