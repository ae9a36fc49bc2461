// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Section names produced by the segmenter. The set is open (the segmenter
// may emit labels outside this vocabulary), but these are the names the
// rest of the pipeline understands.
const (
	SectionContactInfo    = "contact_info"
	SectionSummary        = "summary"
	SectionEducation      = "education"
	SectionWorkExperience = "work_experience"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionReferences     = "references"
)

// ConfidenceSections lists the sections that carry an extraction
// confidence score. A key absent from ExtractionConfidence counts as 0.0
// when averaging over this set.
var ConfidenceSections = []string{
	SectionContactInfo,
	SectionEducation,
	SectionWorkExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
}

// LanguageUnknown is the sentinel for a failed or inconclusive language detection.
const LanguageUnknown = "unknown"

// DatePresent is the sentinel for an ongoing date ("Present", "Current", ...).
// Standardized dates are either YYYY-MM strings or this literal.
const DatePresent = "PRESENT"

// SkillCategory classifies a standardized skill.
type SkillCategory string

// Skill category constants
const (
	SkillTechnical SkillCategory = "TECHNICAL"
	SkillSoft      SkillCategory = "SOFT"
	SkillLanguage  SkillCategory = "LANGUAGE"
	SkillDomain    SkillCategory = "DOMAIN"
	SkillOther     SkillCategory = "OTHER"
)

// ContactInfo holds the candidate's identifying details. Only the name is required.
type ContactInfo struct {
	Name     string   `json:"name" validate:"required,min=1"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// EducationEntry represents one education record with standardized dates.
type EducationEntry struct {
	Institution  string   `json:"institution" validate:"required"`
	Degree       string   `json:"degree" validate:"required"`
	FieldOfStudy string   `json:"field_of_study,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	GPA          float64  `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// WorkExperienceEntry represents one employment record.
type WorkExperienceEntry struct {
	Company          string   `json:"company" validate:"required"`
	Position         string   `json:"position" validate:"required"`
	StartDate        string   `json:"start_date" validate:"required"`
	EndDate          string   `json:"end_date,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements,omitempty"`
	Location         string   `json:"location,omitempty"`
}

// Skill is a standardized skill entry. Name carries the canonical form,
// OriginalText the verbatim phrasing(s) it was derived from.
type Skill struct {
	Name         string        `json:"name" validate:"required,min=1"`
	OriginalText string        `json:"original_text" validate:"required,min=1"`
	Category     SkillCategory `json:"category" validate:"required,oneof=TECHNICAL SOFT LANGUAGE DOMAIN OTHER"`
	Proficiency  *float64      `json:"proficiency,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Project is a secondary structured entry for personal or professional projects.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Certification is a secondary structured entry for professional certifications.
type Certification struct {
	Name       string `json:"name" validate:"required"`
	Issuer     string `json:"issuer,omitempty"`
	IssueDate  string `json:"issue_date,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// Language is a spoken/written language entry.
type Language struct {
	Name        string `json:"name" validate:"required"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ResumeAnalysisResult is the root aggregate produced by the result
// assembler. It is constructed once per pipeline run and read-only
// thereafter. Education, work experience and skills are never nil on a
// completed run; section absence is signalled through the quality gate.
type ResumeAnalysisResult struct {
	ContactInfo          ContactInfo           `json:"contact_info"`
	Education            []EducationEntry      `json:"education" validate:"dive"`
	WorkExperience       []WorkExperienceEntry `json:"work_experience" validate:"dive"`
	Skills               []Skill               `json:"skills" validate:"dive"`
	Projects             []Project             `json:"projects,omitempty"`
	Certifications       []Certification       `json:"certifications,omitempty"`
	Languages            []Language            `json:"languages,omitempty"`
	ExtractionConfidence map[string]float64    `json:"extraction_confidence" validate:"dive,gte=0,lte=1"`
	DocumentLanguage     string                `json:"document_language"`
	FileFormat           string                `json:"file_format,omitempty"`
	ParsingErrors        []string              `json:"parsing_errors,omitempty"`
}

// MinimalResult returns the degraded-but-valid result the assembler falls
// back to when the model output cannot be parsed or validated. The
// supplied errors land in ParsingErrors so callers can see why.
func MinimalResult(parsingErrors ...string) *ResumeAnalysisResult {
	return &ResumeAnalysisResult{
		ContactInfo:          ContactInfo{Name: "Unknown"},
		Education:            []EducationEntry{},
		WorkExperience:       []WorkExperienceEntry{},
		Skills:               []Skill{},
		ExtractionConfidence: map[string]float64{},
		DocumentLanguage:     LanguageUnknown,
		ParsingErrors:        parsingErrors,
	}
}

// MeanConfidence averages extraction confidence over ConfidenceSections,
// treating absent keys as 0.0.
func (r *ResumeAnalysisResult) MeanConfidence() float64 {
	if len(ConfidenceSections) == 0 {
		return 0
	}
	var sum float64
	for _, section := range ConfidenceSections {
		sum += r.ExtractionConfidence[section]
	}
	return sum / float64(len(ConfidenceSections))
}

// ClampConfidence forces every confidence value into [0,1]. The assembler
// calls this before validation so a model emitting 1.2 or -0.1 degrades to
// the nearest bound instead of invalidating the whole result.
func (r *ResumeAnalysisResult) ClampConfidence() {
	for section, value := range r.ExtractionConfidence {
		if value < 0 {
			r.ExtractionConfidence[section] = 0
		} else if value > 1 {
			r.ExtractionConfidence[section] = 1
		}
	}
}

// Normalize ensures the invariant that required list fields are empty
// slices rather than nil, and that the confidence map exists.
func (r *ResumeAnalysisResult) Normalize() {
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperienceEntry{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.ExtractionConfidence == nil {
		r.ExtractionConfidence = map[string]float64{}
	}
	if r.DocumentLanguage == "" {
		r.DocumentLanguage = LanguageUnknown
	}
}

// Validate validates the ResumeAnalysisResult using the validator.
func (r *ResumeAnalysisResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
