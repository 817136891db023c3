package view

import (
	"strings"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

// Section is one numbered block of the printed report.
type Section struct {
	Heading    string     `json:"heading"`
	Body       string     `json:"body,omitempty"`
	Subsection []Labelled `json:"subsections,omitempty"`
}

// Labelled is a body with a short caption.
type Labelled struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

// Report is the academic report tab.
type Report struct {
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Sections     []Section `json:"sections"`
	Advantages   []string  `json:"advantages"`
	Applications []string  `json:"applications"`
	Conclusion   string    `json:"conclusion"`
	Signatures   []string  `json:"signatures"`
}

const reportSubtitle = "Academic Technical Project Report"

var signatureLines = []string{"Student Signature", "Project Guide Signature"}

// NewReport lays out rec.Report as the printable document.
func NewReport(rec domain.ProjectRecord) Report {
	r := rec.Report
	return Report{
		Title:    strings.ToUpper(rec.Title),
		Subtitle: reportSubtitle,
		Sections: []Section{
			{Heading: "I. ABSTRACT", Body: r.Abstract},
			{Heading: "II. INTRODUCTION", Body: r.Introduction},
			{Heading: "III. PROPOSED SYSTEM", Body: r.ProposedSystem},
			{Heading: "IV. METHODOLOGY", Body: r.WorkingMethodology},
			{Heading: "V. HARDWARE & SOFTWARE", Subsection: []Labelled{
				{Label: "Hardware Detail", Body: r.HardwareDescription},
				{Label: "Software Stack", Body: r.SoftwareDescription},
			}},
		},
		Advantages:   append([]string(nil), r.Advantages...),
		Applications: append([]string(nil), r.Applications...),
		Conclusion:   r.Conclusion,
		Signatures:   append([]string(nil), signatureLines...),
	}
}
