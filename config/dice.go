package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
	"github.com/Ashenafi-pixel/montecarlo-dice/gamemath"
)

// Face kinds of a dice set.
const (
	KindInt  = "int"
	KindText = "text"
)

// ErrNoDiceFile is returned when no dice file is configured.
var ErrNoDiceFile = errors.New("no dice file configured")

// DiceSet is the YAML dice file:
//
//	dice:
//	  - name: red
//	    faces: [1, 2, 3, 4, 5, 6]
//	    weights: {6: 2.5}
//	  - name: blue
//	    faces: [1, 2, 3, 4, 5, 6]
type DiceSet struct {
	Dice []DieSpec `yaml:"dice"`
}

// DieSpec describes one die. Weights are keyed by face; faces left out keep
// the default weight.
type DieSpec struct {
	Name    string            `yaml:"name"`
	Faces   []string          `yaml:"faces"`
	Weights map[string]string `yaml:"weights"`
}

// LoadDiceSet reads and parses a YAML dice set.
func LoadDiceSet(path string) (*DiceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDiceSet(data)
}

// ParseDiceSet parses YAML dice set content.
func ParseDiceSet(data []byte) (*DiceSet, error) {
	var ds DiceSet
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dice set: %w", err)
	}
	if len(ds.Dice) == 0 {
		return nil, fmt.Errorf("dice set has no dice: %w", errs.ErrInvalidInput)
	}
	return &ds, nil
}

// Kind reports KindInt when every face of every die is an integer.
func (ds *DiceSet) Kind() string {
	for _, d := range ds.Dice {
		for _, f := range d.Faces {
			if _, err := strconv.Atoi(f); err != nil {
				return KindText
			}
		}
	}
	return KindInt
}

// BuildTextDice builds dice with string faces.
func (ds *DiceSet) BuildTextDice(src gamemath.Source) ([]*die.Die[string], error) {
	return build(ds, src, func(s string) (string, error) { return s, nil })
}

// BuildIntDice builds dice with integer faces.
func (ds *DiceSet) BuildIntDice(src gamemath.Source) ([]*die.Die[int], error) {
	return build(ds, src, strconv.Atoi)
}

func build[F int | string](ds *DiceSet, src gamemath.Source, parse func(string) (F, error)) ([]*die.Die[F], error) {
	out := make([]*die.Die[F], 0, len(ds.Dice))
	for i, spec := range ds.Dice {
		name := spec.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		faces := make([]F, len(spec.Faces))
		for j, s := range spec.Faces {
			f, err := parse(s)
			if err != nil {
				return nil, fmt.Errorf("die %s face %q: %w", name, s, errs.ErrInvalidInput)
			}
			faces[j] = f
		}
		var opts []die.Option
		if src != nil {
			opts = append(opts, die.WithSource(src))
		}
		d, err := die.New(faces, opts...)
		if err != nil {
			return nil, fmt.Errorf("die %s: %w", name, err)
		}
		for key, raw := range spec.Weights {
			face, err := parse(key)
			if err != nil {
				return nil, fmt.Errorf("die %s weight key %q: %w", name, key, errs.ErrUnknownFace)
			}
			w, err := die.ParseWeight(raw)
			if err != nil {
				return nil, fmt.Errorf("die %s: %w", name, err)
			}
			if err := d.ChangeWeight(face, w); err != nil {
				return nil, fmt.Errorf("die %s: %w", name, err)
			}
		}
		out = append(out, d)
	}
	return out, nil
}
