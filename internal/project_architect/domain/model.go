package domain

import "strings"

// HardwareComponent is one line of the bill of materials. Cost is in INR.
type HardwareComponent struct {
	Name string  `json:"name" yaml:"name"`
	Use  string  `json:"use" yaml:"use"`
	Cost float64 `json:"cost" yaml:"cost"`
}

// Report holds the narrative sections of the academic project report.
type Report struct {
	Abstract            string   `json:"abstract" yaml:"abstract"`
	Introduction        string   `json:"introduction" yaml:"introduction"`
	ProposedSystem      string   `json:"proposedSystem" yaml:"proposedSystem"`
	WorkingMethodology  string   `json:"workingMethodology" yaml:"workingMethodology"`
	HardwareDescription string   `json:"hardwareDescription" yaml:"hardwareDescription"`
	SoftwareDescription string   `json:"softwareDescription" yaml:"softwareDescription"`
	ExpectedOutput      string   `json:"expectedOutput" yaml:"expectedOutput"`
	Advantages          []string `json:"advantages" yaml:"advantages"`
	Applications        []string `json:"applications" yaml:"applications"`
	Conclusion          string   `json:"conclusion" yaml:"conclusion"`
}

// ProjectRecord is the unit of display and of generation.
type ProjectRecord struct {
	Title              string              `json:"title" yaml:"title"`
	ProblemDefinition  string              `json:"problemDefinition" yaml:"problemDefinition"`
	WorkingLogic       []string            `json:"workingLogic" yaml:"workingLogic"`
	HardwareComponents []HardwareComponent `json:"hardwareComponents" yaml:"hardwareComponents"`
	SoftwareTools      []string            `json:"softwareTools" yaml:"softwareTools"`
	FutureScope        []string            `json:"futureScope" yaml:"futureScope"`
	Report             Report              `json:"report" yaml:"report"`
}

// TotalCost sums the hardware costs. It is derived on every call and never cached.
func (p ProjectRecord) TotalCost() float64 {
	var total float64
	for _, c := range p.HardwareComponents {
		total += c.Cost
	}
	return total
}

// Clone returns a deep copy so callers can hand the record out without sharing slices.
func (p ProjectRecord) Clone() ProjectRecord {
	out := p
	out.WorkingLogic = cloneStrings(p.WorkingLogic)
	out.SoftwareTools = cloneStrings(p.SoftwareTools)
	out.FutureScope = cloneStrings(p.FutureScope)
	if p.HardwareComponents != nil {
		out.HardwareComponents = append([]HardwareComponent(nil), p.HardwareComponents...)
	}
	out.Report.Advantages = cloneStrings(p.Report.Advantages)
	out.Report.Applications = cloneStrings(p.Report.Applications)
	return out
}

// ShowsSimulator reports whether the details view embeds the hazard simulator.
func ShowsSimulator(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "vision") || strings.Contains(t, "safety")
}

// ConstraintInput is what the student feeds into the architect form.
type ConstraintInput struct {
	Semester     string `json:"semester" form:"semester" yaml:"semester"`
	SkillLevel   string `json:"skillLevel" form:"skillLevel" yaml:"skillLevel"`
	InterestArea string `json:"interestArea" form:"interestArea" yaml:"interestArea"`
	Budget       string `json:"budget" form:"budget" yaml:"budget"`
	ProjectType  string `json:"projectType" form:"projectType" yaml:"projectType"`
}

// HazardResult is the typed outcome of one vision hazard analysis.
type HazardResult struct {
	HazardDetected bool    `json:"hazard_detected"`
	Type           string  `json:"type"`
	Confidence     float64 `json:"confidence"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
