package value

import "strconv"

func parseInt32(s string) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, conversionError(textValue{v: s}, "i32")
	}
	return int32(i), nil
}

func parseInt64(s string) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, conversionError(textValue{v: s}, "i64")
	}
	return i, nil
}

func parseFloat64(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, conversionError(textValue{v: s}, "f64")
	}
	return f, nil
}
