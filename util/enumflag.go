package util

import (
	"fmt"
	"strings"
)

// EnumFlag implements the pflag.Value interface to provide enumerated
// command line parameter values.
type EnumFlag struct {
	allowed []string
	value   string
}

// NewEnumFlag returns a new EnumFlag that has a defaultValue and vs
// enumerated values.
func NewEnumFlag(defaultValue string, vs []string) *EnumFlag {
	return &EnumFlag{allowed: vs, value: defaultValue}
}

func (f *EnumFlag) String() string {
	return f.value
}

func (f *EnumFlag) Set(v string) error {
	for _, a := range f.allowed {
		if a == v {
			f.value = v
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, must be one of %s", v, strings.Join(f.allowed, ","))
}

func (f *EnumFlag) Type() string {
	return fmt.Sprintf("<%s>", strings.Join(f.allowed, ","))
}
