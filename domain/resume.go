package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type PersonalInfo struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone,omitempty"`
	Location        string `json:"location,omitempty"`
	Website         string `json:"website,omitempty"`
	WebsiteDisplay  string `json:"website_display,omitempty"`
	Linkedin        string `json:"linkedin,omitempty"`
	LinkedinDisplay string `json:"linkedin_display,omitempty"`
}

type ExperienceItem struct {
	Title     string   `json:"title" validate:"required"`
	Company   string   `json:"company" validate:"required"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate" validate:"required,docdate"`
	EndDate   string   `json:"endDate" validate:"required,enddate"`
	Details   []string `json:"details,omitempty"`
}

type EducationItem struct {
	Degree      string   `json:"degree" validate:"required"`
	Institution string   `json:"institution" validate:"required"`
	Location    string   `json:"location,omitempty"`
	Date        string   `json:"date,omitempty"`
	Details     []string `json:"details,omitempty"`
}

type ProjectItem struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

type PublicationItem struct {
	Title     string `json:"title" validate:"required"`
	Publisher string `json:"publisher,omitempty"`
	Date      string `json:"date,omitempty"`
	URL       string `json:"url,omitempty"`
}

type CertificationItem struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// SkillCategory is one named group of skills, e.g. "Databases": [...].
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillSet accepts the two JSON shapes clients send for
// technologies_and_skills: a flat list of strings, or an object mapping
// category names to lists of skills. Categories are kept sorted by name
// so rendering is deterministic.
type SkillSet struct {
	Flat       []string
	Categories []SkillCategory
}

func (s *SkillSet) UnmarshalJSON(b []byte) error {
	var flat []string
	if err := json.Unmarshal(b, &flat); err == nil {
		s.Flat = flat
		s.Categories = nil
		return nil
	}

	var grouped map[string][]string
	if err := json.Unmarshal(b, &grouped); err != nil {
		return fmt.Errorf("technologies_and_skills must be a list of strings or a map of category to skills: %w", err)
	}

	s.Flat = nil
	s.Categories = s.Categories[:0]
	for name, skills := range grouped {
		s.Categories = append(s.Categories, SkillCategory{Name: name, Skills: skills})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Name < s.Categories[j].Name
	})
	return nil
}

func (s *SkillSet) MarshalJSON() ([]byte, error) {
	if s.Categories != nil {
		grouped := make(map[string][]string, len(s.Categories))
		for _, c := range s.Categories {
			grouped[c.Name] = c.Skills
		}
		return json.Marshal(grouped)
	}
	return json.Marshal(s.Flat)
}

func (s *SkillSet) Empty() bool {
	return s == nil || (len(s.Flat) == 0 && len(s.Categories) == 0)
}

type ResumeData struct {
	PersonalInfo            PersonalInfo        `json:"personalInfo" validate:"required"`
	ProfessionalSummary     string              `json:"professional_summary,omitempty"`
	Experience              []ExperienceItem    `json:"experience,omitempty" validate:"omitempty,dive"`
	Education               []EducationItem     `json:"education,omitempty" validate:"omitempty,dive"`
	Projects                []ProjectItem       `json:"projects,omitempty" validate:"omitempty,dive"`
	ArticlesAndPublications []PublicationItem   `json:"articles_and_publications,omitempty" validate:"omitempty,dive"`
	Achievements            []string            `json:"achievements,omitempty"`
	Certifications          []CertificationItem `json:"certifications,omitempty" validate:"omitempty,dive"`
	TechnologiesAndSkills   *SkillSet           `json:"technologies_and_skills,omitempty"`
}

// checkDocDate accepts YYYY-MM and YYYY-MM-DD.
func checkDocDate(value string) bool {
	var err error
	switch len(value) {
	case 7:
		_, err = time.Parse("2006-01", value)
	case 10:
		_, err = time.Parse("2006-01-02", value)
	default:
		return false
	}
	return err == nil
}
