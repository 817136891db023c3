package llm

import "google.golang.org/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
func num() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }
func boolean() *genai.Schema { return &genai.Schema{Type: genai.TypeBoolean} }

func arrayOf(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

// ProjectSchema declares the ProjectRecord shape. Every field is required.
func ProjectSchema() *genai.Schema {
	component := object(
		[]string{"name", "use", "cost"},
		map[string]*genai.Schema{
			"name": str(),
			"use":  str(),
			"cost": num(),
		},
	)

	report := object(
		[]string{
			"abstract", "introduction", "proposedSystem", "workingMethodology",
			"hardwareDescription", "softwareDescription", "expectedOutput",
			"advantages", "applications", "conclusion",
		},
		map[string]*genai.Schema{
			"abstract":            str(),
			"introduction":        str(),
			"proposedSystem":      str(),
			"workingMethodology":  str(),
			"hardwareDescription": str(),
			"softwareDescription": str(),
			"expectedOutput":      str(),
			"advantages":          arrayOf(str()),
			"applications":        arrayOf(str()),
			"conclusion":          str(),
		},
	)

	return object(
		[]string{
			"title", "problemDefinition", "workingLogic", "hardwareComponents",
			"softwareTools", "futureScope", "report",
		},
		map[string]*genai.Schema{
			"title":              str(),
			"problemDefinition":  str(),
			"workingLogic":       arrayOf(str()),
			"hardwareComponents": arrayOf(component),
			"softwareTools":      arrayOf(str()),
			"futureScope":        arrayOf(str()),
			"report":             report,
		},
	)
}

// HazardSchema declares the three-field hazard analysis result.
func HazardSchema() *genai.Schema {
	return object(
		[]string{"hazard_detected", "type", "confidence"},
		map[string]*genai.Schema{
			"hazard_detected": boolean(),
			"type":            str(),
			"confidence":      num(),
		},
	)
}
