package attempt

import "github.com/vytor/codedrill/internal/models"

type CaseStatus string

const (
	CasePending CaseStatus = "pending"
	CasePassed  CaseStatus = "passed"
	CaseFailed  CaseStatus = "failed"
)

// CaseView is the display tuple for one test case.
type CaseView struct {
	Index          int               `json:"index"`
	TestCaseID     int               `json:"test_case_id"`
	Input          []models.KeyValue `json:"input"`
	Expected       models.Value      `json:"expected"`
	Selected       bool              `json:"selected"`
	Status         CaseStatus        `json:"status"`
	ActualOutput   string            `json:"actual_output,omitempty"`
	ExpectedOutput string            `json:"expected_output"`
}

// Reconcile lines up judge outcomes with the problem's test cases by test
// case id, in the problem's display order. Cases the judge did not report
// stay pending; outcomes for unknown ids are dropped.
func Reconcile(cases []models.TestCase, result *models.JudgeResult, selected int) []CaseView {
	var byID map[int]models.TestOutcome
	if result != nil {
		byID = make(map[int]models.TestOutcome, len(result.Tests))
		for _, o := range result.Tests {
			if _, seen := byID[o.TestCaseID]; !seen {
				byID[o.TestCaseID] = o
			}
		}
	}

	views := make([]CaseView, len(cases))
	for i, tc := range cases {
		v := CaseView{
			Index:          i,
			TestCaseID:     tc.ID,
			Input:          tc.Input,
			Expected:       tc.Output,
			Selected:       i == selected,
			Status:         CasePending,
			ExpectedOutput: tc.Output.String(),
		}
		if o, ok := byID[tc.ID]; ok {
			v.Status = CaseFailed
			if o.Passed {
				v.Status = CasePassed
			}
			v.ActualOutput = string(o.ActualOutput)
			if o.ExpectedOutput != "" {
				v.ExpectedOutput = string(o.ExpectedOutput)
			}
		}
		views[i] = v
	}
	return views
}
