package models

import (
	"bytes"
	"encoding/json"
)

// Submission is the snapshot sent to the judge.
type Submission struct {
	ProblemID ProblemID `json:"problemId"`
	Code      string    `json:"submission"`
}

// OutputText holds a judge-rendered output. Judges send strings, but a bare
// number or list is accepted and kept in compact JSON form.
type OutputText string

func (o *OutputText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OutputText(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*o = OutputText(buf.String())
	return nil
}

type TestOutcome struct {
	TestCaseID     int        `json:"testcaseid"`
	Passed         bool       `json:"passed"`
	ActualOutput   OutputText `json:"actualOutput"`
	ExpectedOutput OutputText `json:"expectedOutput"`
}

// JudgeResult is produced once per submission and never mutated afterwards.
type JudgeResult struct {
	ProblemID       ProblemID     `json:"problemId"`
	Passed          bool          `json:"passed"`
	Tests           []TestOutcome `json:"tests"`
	TotalTimeTaken  float64       `json:"totalTimeTaken"`
	TotalMemoryUsed float64       `json:"totalMemoryUsed"`
}

// Clone returns a deep copy so callers cannot mutate a stored result.
func (r JudgeResult) Clone() JudgeResult {
	if r.Tests != nil {
		tests := make([]TestOutcome, len(r.Tests))
		copy(tests, r.Tests)
		r.Tests = tests
	}
	return r
}

type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
)
