package bindsys

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Params maps parameter names to values. A value is either a scalar or a
// numeric sequence; a sequence marks the parameter as the swept independent
// variable. Name lookups are case-insensitive.
type Params map[string]any

func (p Params) Clone() Params {
	np := make(Params, len(p))

	for k, v := range p {
		np[k] = v
	}

	return np
}

func (p Params) key(name string) (string, bool) {
	if _, ok := p[name]; ok {
		return name, true
	}

	for k := range p {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}

	return "", false
}

func (p Params) Has(name string) bool {
	_, ok := p.key(name)

	return ok
}

func (p Params) Set(name string, v any) {
	if k, ok := p.key(name); ok {
		p[k] = v

		return
	}

	p[name] = v
}

func (p Params) Float(name string) (float64, error) {
	k, ok := p.key(name)
	if !ok {
		return 0, &MissingParametersError{Names: []string{strings.ToLower(name)}}
	}

	return cast.ToFloat64E(p[k])
}

func (p Params) Floats(name string) ([]float64, error) {
	k, ok := p.key(name)
	if !ok {
		return nil, &MissingParametersError{Names: []string{strings.ToLower(name)}}
	}

	return ToFloats(p[k])
}

// ChangingParameters returns the names of all sequence-valued parameters,
// sorted. Curve generation and fitting require exactly one.
func (p Params) ChangingParameters() []string {
	var names []string

	for k, v := range p {
		if IsSequence(v) {
			names = append(names, k)
		}
	}

	sort.Strings(names)

	return names
}

func IsSequence(v any) bool {
	switch v.(type) {
	case []float64, []float32, []complex128, []int, []int64, []any:
		return true
	}

	return false
}

// ToFloats coerces a sequence value to float64s. Nominally complex inputs
// that are numerically real are accepted through their real parts.
func ToFloats(v any) (ds []float64, err error) {
	switch vv := v.(type) {
	case []float64:
		ds = vv

		return
	case []complex128:
		ds = make([]float64, len(vv))
		for idx, d := range vv {
			ds[idx] = real(d)
		}

		return
	case []float32:
		ds = make([]float64, len(vv))
		for idx, d := range vv {
			ds[idx] = float64(d)
		}

		return
	case []int:
		ds = make([]float64, len(vv))
		for idx, d := range vv {
			ds[idx] = float64(d)
		}

		return
	case []int64:
		ds = make([]float64, len(vv))
		for idx, d := range vv {
			ds[idx] = float64(d)
		}

		return
	}

	is, err := cast.ToSliceE(v)
	if err != nil {
		return
	}

	ds = make([]float64, len(is))

	for idx, i := range is {
		ds[idx], err = cast.ToFloat64E(i)
		if err != nil {
			return
		}
	}

	return
}
