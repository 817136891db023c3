// Package view turns workspace state into the read-only models the pages and
// the JSON API render. Nothing here mutates a record.
package view

import (
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

// Step is one numbered working-logic entry.
type Step struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// CostRow is one line of the estimated cost table.
type CostRow struct {
	Name    string  `json:"name"`
	Use     string  `json:"use"`
	Cost    float64 `json:"cost"`
	Display string  `json:"display"`
}

// Details is the details tab.
type Details struct {
	Title             string    `json:"title"`
	ProblemDefinition string    `json:"problemDefinition"`
	Steps             []Step    `json:"steps"`
	Costs             []CostRow `json:"costs"`
	SoftwareTools     []string  `json:"softwareTools"`
	FutureScope       []string  `json:"futureScope"`
	TotalCost         float64   `json:"totalCost"`
	TotalDisplay      string    `json:"totalDisplay"`
	ShowSimulator     bool      `json:"showSimulator"`
}

// NewDetails derives the details tab from rec. The total is recomputed on every call.
func NewDetails(rec domain.ProjectRecord) Details {
	d := Details{
		Title:             rec.Title,
		ProblemDefinition: rec.ProblemDefinition,
		Steps:             make([]Step, 0, len(rec.WorkingLogic)),
		Costs:             make([]CostRow, 0, len(rec.HardwareComponents)),
		SoftwareTools:     append([]string(nil), rec.SoftwareTools...),
		FutureScope:       append([]string(nil), rec.FutureScope...),
		ShowSimulator:     domain.ShowsSimulator(rec.Title),
	}
	for i, s := range rec.WorkingLogic {
		d.Steps = append(d.Steps, Step{Number: i + 1, Text: s})
	}
	for _, c := range rec.HardwareComponents {
		d.Costs = append(d.Costs, CostRow{Name: c.Name, Use: c.Use, Cost: c.Cost, Display: FormatINR(c.Cost)})
	}
	d.TotalCost = rec.TotalCost()
	d.TotalDisplay = FormatINR(d.TotalCost)
	return d
}

// FormatINR renders an amount in rupees, dropping the paise when they are zero.
func FormatINR(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimSuffix(s, ".00")
	return "₹" + s
}
