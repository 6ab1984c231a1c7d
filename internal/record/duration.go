package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration with a "{secs}.{nanos:09}" JSON
// representation (e.g. "1.500000000"), matching the reference's
// seconds-plus-nine-digit-fraction rendering. Unmarshal is permissive: it
// accepts either that string form or a bare JSON number of seconds.
type Duration time.Duration

func (d Duration) String() string {
	total := time.Duration(d)
	secs := int64(total / time.Second)
	nanos := int64(total % time.Second)
	if nanos < 0 {
		nanos = -nanos
	}
	return fmt.Sprintf("%d.%09d", secs, nanos)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) == 0 {
		return fmt.Errorf("record: empty duration")
	}
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("record: invalid duration string: %w", err)
		}
		s = unquoted
	}
	parts := strings.SplitN(s, ".", 2)
	secs, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("record: invalid duration seconds: %w", err)
	}
	var nanos int64
	if len(parts) == 2 {
		frac := parts[1]
		for len(frac) < 9 {
			frac += "0"
		}
		frac = frac[:9]
		nanos, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return fmt.Errorf("record: invalid duration fraction: %w", err)
		}
	}
	*d = Duration(time.Duration(secs)*time.Second + time.Duration(nanos))
	return nil
}
