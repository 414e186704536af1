package infrastructure

import (
	"strings"
	"time"

	"resume-engine/domain"
)

// renderClassicCoverLetter fills the "classic" cover letter skeleton.
// Paragraph breaks in the letter content are preserved: LaTeX treats
// the blank lines as paragraph boundaries.
func renderClassicCoverLetter(skeleton string, data *domain.CoverLetterData) string {
	pi := data.PersonalInfo

	date := data.Date
	if date == "" {
		date = time.Now().Format("January 2, 2006")
	}
	salutation := data.Salutation
	if salutation == "" {
		salutation = "Dear Hiring Manager,"
	}
	closing := data.Closing
	if closing == "" {
		closing = "Sincerely,"
	}

	out := skeleton
	out = fillAnchor(out, "sendersection", cmd("sender",
		EscapeLaTeX(pi.Name),
		EscapeLaTeX(pi.Email),
		EscapeLaTeX(pi.Phone),
		EscapeLaTeX(pi.Location),
	))
	out = fillAnchor(out, "recipientsection", classicRecipient(data.Recipient))
	out = fillAnchor(out, "datesection", cmd("letterdate", EscapeLaTeX(date)))
	out = fillAnchor(out, "salutationsection", cmd("salutation", EscapeLaTeX(salutation)))
	out = fillAnchor(out, "bodysection", EscapeLaTeX(data.Content))
	out = fillAnchor(out, "closingsection", cmd("closing", EscapeLaTeX(closing), EscapeLaTeX(pi.Name)))
	return out
}

func classicRecipient(recipient *domain.Recipient) string {
	if recipient == nil {
		return ""
	}
	var lines []string
	if recipient.Name != "" {
		lines = append(lines, EscapeLaTeX(recipient.Name))
	}
	if recipient.Company != "" {
		lines = append(lines, EscapeLaTeX(recipient.Company))
	}
	lines = append(lines, escapeAll(recipient.Address)...)
	if len(lines) == 0 {
		return ""
	}
	return cmd("recipientblock", strings.Join(lines, `\\`))
}
