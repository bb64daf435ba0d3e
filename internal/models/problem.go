package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Normalize lowercases and trims the tier name. Unknown tiers are kept as-is.
func (d Difficulty) Normalize() Difficulty {
	return Difficulty(strings.ToLower(strings.TrimSpace(string(d))))
}

// Known reports whether d is one of easy, medium or hard.
func (d Difficulty) Known() bool {
	switch d.Normalize() {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ProblemID is an opaque problem identifier. The backend sends numbers,
// the submission echo sends strings; both decode to the same value.
type ProblemID string

func (id *ProblemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProblemID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("problem id: %w", err)
	}
	*id = ProblemID(n.String())
	return nil
}

func (id ProblemID) String() string { return string(id) }

// Next returns id+1 for sequential integer ids.
func (id ProblemID) Next() (ProblemID, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return "", false
	}
	return ProblemID(strconv.FormatInt(n+1, 10)), true
}

type ValueKind int

const (
	ValueUnset ValueKind = iota
	ValueScalar
	ValueSequence
)

// Value is either a scalar number or a sequence of numbers.
type Value struct {
	kind   ValueKind
	scalar float64
	seq    []float64
}

func Scalar(v float64) Value { return Value{kind: ValueScalar, scalar: v} }

func Sequence(vs ...float64) Value {
	seq := make([]float64, len(vs))
	copy(seq, vs)
	return Value{kind: ValueSequence, seq: seq}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) AsScalar() (float64, bool) {
	return v.scalar, v.kind == ValueScalar
}

func (v Value) AsSequence() ([]float64, bool) {
	if v.kind != ValueSequence {
		return nil, false
	}
	out := make([]float64, len(v.seq))
	copy(out, v.seq)
	return out, true
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueScalar:
		return v.scalar == o.scalar
	case ValueSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if v.seq[i] != o.seq[i] {
				return false
			}
		}
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case ValueScalar:
		return formatNumber(v.scalar)
	case ValueSequence:
		parts := make([]string, len(v.seq))
		for i, f := range v.seq {
			parts[i] = formatNumber(f)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueScalar:
		return json.Marshal(v.scalar)
	case ValueSequence:
		if v.seq == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.seq)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Value{}
		return nil
	case data[0] == '[':
		var seq []float64
		if err := json.Unmarshal(data, &seq); err != nil {
			return fmt.Errorf("value must be a number or a list of numbers: %w", err)
		}
		*v = Sequence(seq...)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("value must be a number or a list of numbers: %w", err)
		}
		*v = Scalar(f)
		return nil
	}
}

// KeyValue is one named input of a test case.
type KeyValue struct {
	Key   string `json:"Key" validate:"required"`
	Value Value  `json:"Value"`
}

type TestCase struct {
	ID     int        `json:"test_case_id"`
	Input  []KeyValue `json:"input" validate:"dive"`
	Output Value      `json:"output"`
}

type Problem struct {
	ID          ProblemID  `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Boilerplate string     `json:"boilerplate"`
	Difficulty  Difficulty `json:"difficulty"`
	TestCases   []TestCase `json:"test_cases" validate:"dive"`
}

// Validate checks that test case ids are unique within the problem.
func (p Problem) Validate() error {
	seen := make(map[int]struct{}, len(p.TestCases))
	for _, tc := range p.TestCases {
		if _, dup := seen[tc.ID]; dup {
			return fmt.Errorf("duplicate test case id %d in problem %s", tc.ID, p.ID)
		}
		seen[tc.ID] = struct{}{}
	}
	return nil
}
