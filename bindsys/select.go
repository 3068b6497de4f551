package bindsys

import (
	"strings"
)

// FromName resolves a built-in system by its case-insensitive name or alias.
func FromName(name string) (sys System, err error) {
	switch strings.ReplaceAll(strings.ToLower(name), " ", "") {
	case "simple", "1:1":
		sys = NewOneToOne()
	case "simplekinetic", "1:1kinetic":
		sys = NewOneToOneKinetic()
	case "homodimer", "homodimerformation":
		sys = NewHomodimerFormation()
	case "homodimerkinetic", "homodimerformationkinetic":
		sys = NewHomodimerFormationKinetic()
	case "competition", "1:1:1":
		sys = NewCompetition()
	case "homodimerbreaking":
		sys = NewHomodimerBreaking()
	default:
		err = ErrUnknownSystem
	}

	return
}
