package util

import "sort"

// Compare returns 0 if a equals b, -1 if a is less than b, and 1 if a is
// greater than b.
//
// For comparison between values of different types, the following ordering
// is used: nil < bool < float64 < string < []interface{} < map[string]interface{}.
// Slices and maps are compared recursively, element by element in key
// order; if one is a prefix of the other the shorter one is "less than".
// Nil is always equal to nil.
func Compare(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case rankNumber:
		x, y := toFloat(a), toFloat(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case rankString:
		x, y := a.(string), b.(string)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case rankSlice:
		return compareSlices(a.([]interface{}), b.([]interface{}))
	case rankMap:
		return compareMaps(a.(map[string]interface{}), b.(map[string]interface{}))
	default:
		return 0
	}
}

const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankSlice
	rankMap
	rankOther
)

func typeRank(x interface{}) int {
	switch x.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return rankNumber
	case string:
		return rankString
	case []interface{}:
		return rankSlice
	case map[string]interface{}:
		return rankMap
	default:
		return rankOther
	}
}

func toFloat(x interface{}) float64 {
	switch v := x.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return 0
}

func compareSlices(a, b []interface{}) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareMaps(a, b map[string]interface{}) int {
	ak, bk := sortedKeys(a), sortedKeys(b)
	for i := 0; i < len(ak) && i < len(bk); i++ {
		if ak[i] != bk[i] {
			if ak[i] < bk[i] {
				return -1
			}
			return 1
		}
		if c := Compare(a[ak[i]], b[bk[i]]); c != 0 {
			return c
		}
	}
	switch {
	case len(ak) < len(bk):
		return -1
	case len(ak) > len(bk):
		return 1
	default:
		return 0
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
