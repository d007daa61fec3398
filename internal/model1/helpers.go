package model1

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
)

// Compare orders two cells by their sort keys using the column's kind.
// Returns -1, 0 or 1. Keys that cannot be read as the requested kind are
// ordered by their display values.
func Compare(a, b Cell, kind SortKind) int {
	ka, kb := a.SortKey(), b.SortKey()
	switch kind {
	case KindString:
		return strings.Compare(keyString(ka), keyString(kb))
	case KindNatural:
		return naturalCompare(keyString(ka), keyString(kb))
	case KindNumber:
		if x, ok := toNumber(ka); ok {
			if y, ok := toNumber(kb); ok {
				return cmp.Compare(x, y)
			}
		}
	case KindTime:
		if x, ok := toTime(ka); ok {
			if y, ok := toTime(kb); ok {
				return x.Compare(y)
			}
		}
	case KindDuration:
		if x, ok := toDuration(ka); ok {
			if y, ok := toDuration(kb); ok {
				return cmp.Compare(x, y)
			}
		}
	default:
		return compareAuto(a, b)
	}

	return strings.Compare(a.Display, b.Display)
}

// Less returns true if a sorts before b in the given direction.
func Less(a, b Cell, kind SortKind, dir Direction) bool {
	c := Compare(a, b, kind)
	if dir == Descending {
		return c > 0
	}
	return c < 0
}

func compareAuto(a, b Cell) int {
	ka, kb := a.SortKey(), b.SortKey()
	switch x := ka.(type) {
	case time.Duration:
		if y, ok := kb.(time.Duration); ok {
			return cmp.Compare(x, y)
		}
	case time.Time, *time.Time:
		if tx, ok := toTime(x); ok {
			if ty, ok := timeKey(kb); ok {
				return tx.Compare(ty)
			}
		}
	case string:
		if y, ok := kb.(string); ok {
			return strings.Compare(x, y)
		}
	default:
		if nx, ok := numberKey(ka); ok {
			if ny, ok := numberKey(kb); ok {
				return cmp.Compare(nx, ny)
			}
		}
	}

	return strings.Compare(a.Display, b.Display)
}

func naturalCompare(s1, s2 string) int {
	switch {
	case s1 == s2:
		return 0
	case sortorder.NaturalLess(s1, s2):
		return -1
	default:
		return 1
	}
}

func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// numberKey only accepts Go numeric types.
func numberKey(k any) (float64, bool) {
	switch v := k.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func toNumber(k any) (float64, bool) {
	if n, ok := numberKey(k); ok {
		return n, true
	}
	s, ok := k.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func timeKey(k any) (time.Time, bool) {
	switch v := k.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, true
		}
		return *v, true
	default:
		return time.Time{}, false
	}
}

func toTime(k any) (time.Time, bool) {
	if t, ok := timeKey(k); ok {
		return t, true
	}
	s, ok := k.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func toDuration(k any) (time.Duration, bool) {
	switch v := k.(type) {
	case time.Duration:
		return v, true
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d, true
		}
		if v == "" || v == NAValue {
			return 0, true
		}
		return time.Duration(durationToSeconds(v)) * time.Second, true
	default:
		return 0, false
	}
}

// durationToSeconds reads ages such as "3d4h" or "2y".
func durationToSeconds(duration string) int64 {
	num := make([]rune, 0, 5)
	var n, m int64
	for _, r := range duration {
		switch r {
		case 'y':
			m = 365 * 24 * 60 * 60
		case 'd':
			m = 24 * 60 * 60
		case 'h':
			m = 60 * 60
		case 'm':
			m = 60
		case 's':
			m = 1
		default:
			if r >= '0' && r <= '9' {
				num = append(num, r)
			}
			continue
		}
		n, num = n+runesToNum(num)*m, num[:0]
	}
	return n
}

func runesToNum(rr []rune) int64 {
	var r int64
	var m int64 = 1
	for i := len(rr) - 1; i >= 0; i-- {
		v := int64(rr[i] - '0')
		r += v * m
		m *= 10
	}
	return r
}
