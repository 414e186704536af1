package infrastructure

import (
	"strings"

	"resume-engine/domain"
)

// renderMinimalistResume fills the "minimalist" resume skeleton. The
// template defines \personalinfo, \summary, \experienceentry,
// \educationentry, \projectentry, \publicationentry, \certificationentry
// and \skills; this renderer only supplies their invocations.
func renderMinimalistResume(skeleton string, data *domain.ResumeData) string {
	out := skeleton
	out = fillAnchor(out, "personalinfosection", minimalistPersonalInfo(&data.PersonalInfo))
	out = fillAnchor(out, "summarysection", minimalistSummary(data.ProfessionalSummary))
	out = fillAnchor(out, "experiencesection", minimalistExperience(data.Experience))
	out = fillAnchor(out, "educationsection", minimalistEducation(data.Education))
	out = fillAnchor(out, "skillssection", minimalistSkills(data.TechnologiesAndSkills))
	out = fillAnchor(out, "projectssection", minimalistProjects(data.Projects))
	out = fillAnchor(out, "publicationssection", minimalistPublications(data.ArticlesAndPublications))
	out = fillAnchor(out, "certificationssection", minimalistCertifications(data.Certifications))
	return out
}

func minimalistPersonalInfo(pi *domain.PersonalInfo) string {
	return cmd("personalinfo",
		EscapeLaTeX(pi.Name),
		EscapeLaTeX(pi.Location),
		EscapeLaTeX(pi.Phone),
		EscapeLaTeX(pi.Email),
		EscapeLaTeX(pi.Website),
	)
}

func minimalistSummary(summary string) string {
	if summary == "" {
		return ""
	}
	return cmd("summary", EscapeLaTeX(summary))
}

func minimalistExperience(experience []domain.ExperienceItem) string {
	if len(experience) == 0 {
		return ""
	}
	section := []string{`\section*{Experience}`}
	for _, exp := range experience {
		section = append(section, cmd("experienceentry",
			EscapeLaTeX(exp.Company),
			EscapeLaTeX(exp.Title),
			dateRange(exp.StartDate, exp.EndDate),
			EscapeLaTeX(exp.Location),
			itemize(exp.Details),
		))
	}
	return strings.Join(section, "\n")
}

func minimalistEducation(education []domain.EducationItem) string {
	if len(education) == 0 {
		return ""
	}
	section := []string{`\section*{Education}`}
	for _, edu := range education {
		section = append(section, cmd("educationentry",
			EscapeLaTeX(edu.Degree),
			EscapeLaTeX(edu.Institution),
			EscapeLaTeX(edu.Date),
			strings.Join(escapeAll(edu.Details), " "),
		))
	}
	return strings.Join(section, "\n")
}

func minimalistSkills(skills *domain.SkillSet) string {
	if skills.Empty() {
		return ""
	}
	if len(skills.Categories) > 0 {
		groups := make([]string, 0, len(skills.Categories))
		for _, category := range skills.Categories {
			groups = append(groups, cmd("textbf", EscapeLaTeX(category.Name)+":")+" "+
				strings.Join(escapeAll(category.Skills), ", "))
		}
		return cmd("skills", strings.Join(groups, "; "))
	}
	return cmd("skills", strings.Join(escapeAll(skills.Flat), ", "))
}

func minimalistProjects(projects []domain.ProjectItem) string {
	if len(projects) == 0 {
		return ""
	}
	section := []string{`\section*{Projects}`}
	for _, proj := range projects {
		section = append(section, cmd("projectentry",
			EscapeLaTeX(proj.Name),
			strings.Join(escapeAll(proj.Technologies), ", "),
			EscapeLaTeX(proj.Description),
		))
	}
	return strings.Join(section, "\n")
}

func minimalistPublications(publications []domain.PublicationItem) string {
	if len(publications) == 0 {
		return ""
	}
	section := []string{`\section*{Articles \& Publications}`}
	for _, pub := range publications {
		section = append(section, cmd("publicationentry",
			EscapeLaTeX(pub.Title),
			EscapeLaTeX(pub.Publisher),
			EscapeLaTeX(pub.Date),
		))
	}
	return strings.Join(section, "\n")
}

func minimalistCertifications(certifications []domain.CertificationItem) string {
	if len(certifications) == 0 {
		return ""
	}
	section := []string{`\section*{Certifications}`}
	for _, cert := range certifications {
		section = append(section, cmd("certificationentry",
			EscapeLaTeX(cert.Name),
			EscapeLaTeX(cert.Issuer),
			EscapeLaTeX(cert.Date),
		))
	}
	return strings.Join(section, "\n")
}
