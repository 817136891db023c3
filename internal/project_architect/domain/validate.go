package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError lists every field that broke the record contract.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid record: " + strings.Join(e.Problems, "; ")
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p *problems) text(field, v string) {
	if strings.TrimSpace(v) == "" {
		p.addf("%s is empty", field)
	}
}

func (p *problems) list(field string, v []string, minLen int) {
	if v == nil {
		p.addf("%s is missing", field)
		return
	}
	if len(v) < minLen {
		p.addf("%s needs at least %d entries", field, minLen)
	}
	for i, s := range v {
		if strings.TrimSpace(s) == "" {
			p.addf("%s[%d] is empty", field, i)
		}
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}

// Validate checks the invariants a displayed record must hold.
func (r ProjectRecord) Validate() error {
	var p problems
	p.text("title", r.Title)
	p.text("problemDefinition", r.ProblemDefinition)
	p.list("workingLogic", r.WorkingLogic, 1)

	if r.HardwareComponents == nil {
		p.addf("hardwareComponents is missing")
	}
	for i, c := range r.HardwareComponents {
		p.text(fmt.Sprintf("hardwareComponents[%d].name", i), c.Name)
		p.text(fmt.Sprintf("hardwareComponents[%d].use", i), c.Use)
		if math.IsNaN(c.Cost) || math.IsInf(c.Cost, 0) || c.Cost < 0 {
			p.addf("hardwareComponents[%d].cost must be a non-negative number", i)
		}
	}

	p.list("softwareTools", r.SoftwareTools, 0)
	p.list("futureScope", r.FutureScope, 0)

	rep := r.Report
	p.text("report.abstract", rep.Abstract)
	p.text("report.introduction", rep.Introduction)
	p.text("report.proposedSystem", rep.ProposedSystem)
	p.text("report.workingMethodology", rep.WorkingMethodology)
	p.text("report.hardwareDescription", rep.HardwareDescription)
	p.text("report.softwareDescription", rep.SoftwareDescription)
	p.text("report.expectedOutput", rep.ExpectedOutput)
	p.list("report.advantages", rep.Advantages, 0)
	p.list("report.applications", rep.Applications, 0)
	p.text("report.conclusion", rep.Conclusion)

	return p.err()
}

// Validate rejects a confidence outside 0..100.
func (h HazardResult) Validate() error {
	var p problems
	if math.IsNaN(h.Confidence) || h.Confidence < 0 || h.Confidence > 100 {
		p.addf("confidence %v outside 0..100", h.Confidence)
	}
	return p.err()
}

// Validate checks the form fields. Budget must be a non-negative number.
func (c ConstraintInput) Validate() error {
	var p problems
	p.text("semester", c.Semester)
	p.text("skillLevel", c.SkillLevel)
	p.text("interestArea", c.InterestArea)
	p.text("projectType", c.ProjectType)
	if b, err := strconv.ParseFloat(strings.TrimSpace(c.Budget), 64); err != nil || b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		p.addf("budget %q is not a non-negative number", c.Budget)
	}
	if err := p.err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
