package service

import (
	"fmt"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

const hazardInstruction = "Analyze this image for safety hazards such as fire, smoke, or gas leaks. " +
	"Determine if a hazard exists, its type, and confidence level."

// projectPrompt embeds the constraints verbatim in the guide instruction.
func projectPrompt(in domain.ConstraintInput) string {
	return fmt.Sprintf(`You are a professional ECE Project Guide. Generate a COMPLETE and STRUCTURED ECE project for a student with these details:
- Semester: %s
- Skill Level: %s
- Interest Area: %s
- Budget: %s INR
- Project Type: %s

The project must be innovative, practical, and use modern ECE technologies (IoT, AI, Embedded, VLSI, etc.).
Include realistic components and costs in INR that fit within the %s budget.`,
		in.Semester, in.SkillLevel, in.InterestArea, in.Budget, in.ProjectType, in.Budget)
}
