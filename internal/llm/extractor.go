// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "WorkExperience", "Skills")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// sectionSchemas maps resume section names to their extraction schemas.
// Sections without an entry here (summary, references, unrecognized
// labels) are extracted with GenericSectionSchema.
var sectionSchemas = map[string]func() ExtractionSchema{
	"contact_info":    ContactInfoSchema,
	"education":       EducationSchema,
	"work_experience": WorkExperienceSchema,
	"skills":          SkillsSchema,
	"projects":        ProjectsSchema,
	"certifications":  CertificationsSchema,
	"languages":       LanguagesSchema,
}

// SectionSchema returns the extraction schema for a resume section name.
func SectionSchema(section string) ExtractionSchema {
	if build, ok := sectionSchemas[section]; ok {
		return build()
	}
	return GenericSectionSchema(section)
}

// ContactInfoSchema returns the extraction schema for the contact section.
func ContactInfoSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ContactInfo",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract the candidate's contact details from the contact section of a resume.`,
		Fields: []SchemaField{
			{Name: "name", Type: "\"string\"", Description: "Candidate's full name", Required: true},
			{Name: "email", Type: "\"string\"", Description: "Email address if present"},
			{Name: "phone", Type: "\"string\"", Description: "Phone number if present"},
			{Name: "location", Type: "\"string\"", Description: "City/region if present"},
			{Name: "links", Type: "[\"string\"]", Description: "URLs: portfolio, LinkedIn, GitHub"},
		},
	}
}

// EducationSchema returns the extraction schema for the education section.
func EducationSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Education",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract every education record from the education section of a resume.`,
		Fields: []SchemaField{
			{Name: "entries", Type: "[{\"institution\": \"string\", \"degree\": \"string\", \"field_of_study\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\", \"gpa\": 0.0, \"achievements\": [\"string\"]}]", Description: "One entry per institution attended, dates verbatim as written", Required: true},
		},
	}
}

// WorkExperienceSchema returns the extraction schema for the work experience section.
func WorkExperienceSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "WorkExperience",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract every employment record from the work experience section of a resume.`,
		Fields: []SchemaField{
			{Name: "entries", Type: "[{\"company\": \"string\", \"position\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\", \"responsibilities\": [\"string\"], \"achievements\": [\"string\"], \"location\": \"string\"}]", Description: "One entry per role held, most recent first, dates verbatim as written", Required: true},
		},
	}
}

// SkillsSchema returns the extraction schema for the skills section.
func SkillsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Skills",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to list every skill mentioned in the skills section of a resume.`,
		Fields: []SchemaField{
			{Name: "skills", Type: "[\"string\"]", Description: "Each skill phrase exactly as written", Required: true},
		},
	}
}

// ProjectsSchema returns the extraction schema for the projects section.
func ProjectsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Projects",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract every project from the projects section of a resume.`,
		Fields: []SchemaField{
			{Name: "entries", Type: "[{\"name\": \"string\", \"description\": \"string\", \"technologies\": [\"string\"], \"start_date\": \"string\", \"end_date\": \"string\", \"url\": \"string\"}]", Description: "One entry per project", Required: true},
		},
	}
}

// CertificationsSchema returns the extraction schema for the certifications section.
func CertificationsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Certifications",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract every certification from the certifications section of a resume.`,
		Fields: []SchemaField{
			{Name: "entries", Type: "[{\"name\": \"string\", \"issuer\": \"string\", \"issue_date\": \"string\", \"expiry_date\": \"string\"}]", Description: "One entry per certification", Required: true},
		},
	}
}

// LanguagesSchema returns the extraction schema for the languages section.
func LanguagesSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Languages",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract every spoken or written language from the languages section of a resume.`,
		Fields: []SchemaField{
			{Name: "entries", Type: "[{\"name\": \"string\", \"proficiency\": \"string\"}]", Description: "One entry per language with proficiency as written (e.g. 'native', 'fluent', 'B2')", Required: true},
		},
	}
}

// GenericSectionSchema returns a permissive schema for sections outside
// the known vocabulary (summary, references, custom headings).
func GenericSectionSchema(section string) ExtractionSchema {
	return ExtractionSchema{
		Name: "GenericSection",
		Description: fmt.Sprintf(`You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase or invent.
Your task is to extract the content of the %q section of a resume as structured items.`, section),
		Fields: []SchemaField{
			{Name: "items", Type: "[\"string\"]", Description: "Each distinct statement or item in the section, verbatim", Required: true},
		},
	}
}
