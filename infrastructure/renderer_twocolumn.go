package infrastructure

import (
	"strings"

	"resume-engine/domain"
)

// renderTwocolumnResume fills the "twocolumn" resume skeleton: name
// banner on top, contact/skills/education in the left column,
// summary/experience/projects in the right.
func renderTwocolumnResume(skeleton string, data *domain.ResumeData) string {
	out := skeleton
	out = fillAnchor(out, "nameplaceholder", cmd("nameheader", EscapeLaTeX(data.PersonalInfo.Name)))
	out = fillAnchor(out, "leftcolumncontent", twocolumnLeft(data))
	out = fillAnchor(out, "rightcolumncontent", twocolumnRight(data))
	return out
}

func twocolumnLeft(data *domain.ResumeData) string {
	var content []string

	pi := data.PersonalInfo
	content = append(content, cmd("contactinfo",
		EscapeLaTeX(pi.Email),
		EscapeLaTeX(pi.Phone),
		EscapeLaTeX(pi.Linkedin),
		EscapeLaTeX(pi.Website),
	))

	if skills := twocolumnSkills(data.TechnologiesAndSkills); skills != "" {
		content = append(content, cmd("skillslist", skills))
	}

	if len(data.Education) > 0 {
		entries := make([]string, 0, len(data.Education))
		for _, edu := range data.Education {
			entries = append(entries, cmd("educationentryleft",
				EscapeLaTeX(edu.Degree),
				EscapeLaTeX(edu.Institution),
				EscapeLaTeX(edu.Date),
			))
		}
		content = append(content, cmd("educationlistleft", "\n"+strings.Join(entries, "\n")+"\n"))
	}

	return strings.Join(content, "\n")
}

func twocolumnSkills(skills *domain.SkillSet) string {
	if skills.Empty() {
		return ""
	}
	if len(skills.Categories) > 0 {
		groups := make([]string, 0, len(skills.Categories))
		for _, category := range skills.Categories {
			groups = append(groups, cmd("textbf", EscapeLaTeX(category.Name))+": "+
				strings.Join(escapeAll(category.Skills), ", "))
		}
		return strings.Join(groups, `\newline `)
	}
	return strings.Join(escapeAll(skills.Flat), ", ")
}

func twocolumnRight(data *domain.ResumeData) string {
	var content []string

	if data.ProfessionalSummary != "" {
		content = append(content, cmd("summarysectioncontent", EscapeLaTeX(data.ProfessionalSummary)))
	}

	if len(data.Experience) > 0 {
		content = append(content, `\section*{Experience}`)
		for _, exp := range data.Experience {
			content = append(content, cmd("experienceentryright",
				EscapeLaTeX(exp.Title),
				EscapeLaTeX(exp.Company),
				dateRange(exp.StartDate, exp.EndDate),
				EscapeLaTeX(exp.Location),
				itemize(exp.Details),
			))
		}
	}

	if len(data.Projects) > 0 {
		content = append(content, `\section*{Projects}`)
		for _, proj := range data.Projects {
			content = append(content, cmd("projectsentryright",
				EscapeLaTeX(proj.Name),
				strings.Join(escapeAll(proj.Technologies), ", "),
				EscapeLaTeX(proj.Description),
			))
		}
	}

	return strings.Join(content, "\n\n")
}
