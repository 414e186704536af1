package infrastructure

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/sirupsen/logrus"

	"resume-engine/domain"
)

// DocxWriter produces DOCX output by substituting resume fields into a
// template.docx skeleton shipped next to the LaTeX one. Placeholders in
// the skeleton look like {{name}} or {{experience}}; multi-line section
// content is injected as literal runs separated by <w:br/> so the
// document model stays valid.
type DocxWriter struct {
	log *logrus.Logger
}

func NewDocxWriter(log *logrus.Logger) *DocxWriter {
	return &DocxWriter{log: log}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// docxText turns plain-text lines into the XML fragment that replaces a
// placeholder inside a <w:t> run.
func docxText(lines ...string) string {
	escaped := make([]string, 0, len(lines))
	for _, line := range lines {
		escaped = append(escaped, xmlEscaper.Replace(line))
	}
	return strings.Join(escaped, `</w:t><w:br/><w:t xml:space="preserve">`)
}

// GenerateResume renders a resume into the given DOCX skeleton.
func (w *DocxWriter) GenerateResume(skeletonPath string, data *domain.ResumeData) ([]byte, error) {
	if _, err := os.Stat(skeletonPath); err != nil {
		return nil, ErrNoDocxSkeleton
	}

	reader, err := docx.ReadDocxFile(skeletonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read docx skeleton %s: %w", skeletonPath, err)
	}
	defer func() { _ = reader.Close() }()

	doc := reader.Editable()
	for placeholder, content := range resumePlaceholders(data) {
		doc.ReplaceRaw("{{"+placeholder+"}}", content, -1)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize docx: %w", err)
	}
	w.log.WithField("bytes", buf.Len()).Debug("generated docx")
	return buf.Bytes(), nil
}

func resumePlaceholders(data *domain.ResumeData) map[string]string {
	pi := data.PersonalInfo

	var contact []string
	for _, part := range []string{pi.Email, pi.Phone, pi.Location, pi.Website, pi.Linkedin} {
		if part != "" {
			contact = append(contact, part)
		}
	}

	return map[string]string{
		"name":           docxText(pi.Name),
		"contact":        docxText(strings.Join(contact, " | ")),
		"summary":        docxText(data.ProfessionalSummary),
		"experience":     docxExperience(data.Experience),
		"education":      docxEducation(data.Education),
		"projects":       docxProjects(data.Projects),
		"skills":         docxSkills(data.TechnologiesAndSkills),
		"publications":   docxPublications(data.ArticlesAndPublications),
		"achievements":   docxText(bulleted(data.Achievements)...),
		"certifications": docxCertifications(data.Certifications),
	}
}

func bulleted(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, "• "+line)
	}
	return out
}

func docxExperience(experience []domain.ExperienceItem) string {
	var lines []string
	for _, exp := range experience {
		header := fmt.Sprintf("%s — %s (%s – %s)", exp.Company, exp.Title, exp.StartDate, exp.EndDate)
		if exp.Location != "" {
			header += " | " + exp.Location
		}
		lines = append(lines, header)
		lines = append(lines, bulleted(exp.Details)...)
		lines = append(lines, "")
	}
	return docxText(trimTrailingBlank(lines)...)
}

func docxEducation(education []domain.EducationItem) string {
	var lines []string
	for _, edu := range education {
		header := fmt.Sprintf("%s — %s", edu.Institution, edu.Degree)
		if edu.Date != "" {
			header += fmt.Sprintf(" (%s)", edu.Date)
		}
		lines = append(lines, header)
		lines = append(lines, bulleted(edu.Details)...)
		lines = append(lines, "")
	}
	return docxText(trimTrailingBlank(lines)...)
}

func docxProjects(projects []domain.ProjectItem) string {
	var lines []string
	for _, proj := range projects {
		lines = append(lines, proj.Name)
		if len(proj.Technologies) > 0 {
			lines = append(lines, "Technologies: "+strings.Join(proj.Technologies, ", "))
		}
		if proj.Description != "" {
			lines = append(lines, proj.Description)
		}
		lines = append(lines, "")
	}
	return docxText(trimTrailingBlank(lines)...)
}

func docxSkills(skills *domain.SkillSet) string {
	if skills.Empty() {
		return docxText("")
	}
	if len(skills.Categories) > 0 {
		lines := make([]string, 0, len(skills.Categories))
		for _, category := range skills.Categories {
			lines = append(lines, category.Name+": "+strings.Join(category.Skills, ", "))
		}
		return docxText(lines...)
	}
	return docxText(bulleted(skills.Flat)...)
}

func docxPublications(publications []domain.PublicationItem) string {
	var lines []string
	for _, pub := range publications {
		line := pub.Title
		var meta []string
		if pub.Publisher != "" {
			meta = append(meta, pub.Publisher)
		}
		if pub.Date != "" {
			meta = append(meta, pub.Date)
		}
		if len(meta) > 0 {
			line += " (" + strings.Join(meta, ", ") + ")"
		}
		if pub.URL != "" {
			line += " - " + pub.URL
		}
		lines = append(lines, line)
	}
	return docxText(lines...)
}

func docxCertifications(certifications []domain.CertificationItem) string {
	var lines []string
	for _, cert := range certifications {
		line := cert.Name
		var meta []string
		if cert.Issuer != "" {
			meta = append(meta, cert.Issuer)
		}
		if cert.Date != "" {
			meta = append(meta, cert.Date)
		}
		if len(meta) > 0 {
			line += " (" + strings.Join(meta, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return docxText(lines...)
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
