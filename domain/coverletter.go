package domain

type Recipient struct {
	Name    string   `json:"name,omitempty"`
	Company string   `json:"company,omitempty"`
	Address []string `json:"address,omitempty"`
}

type CoverLetterData struct {
	PersonalInfo PersonalInfo `json:"personalInfo" validate:"required"`
	Recipient    *Recipient   `json:"recipient,omitempty"`
	Date         string       `json:"date,omitempty"`
	Salutation   string       `json:"salutation,omitempty"`
	Content      string       `json:"content" validate:"required"`
	Closing      string       `json:"closing,omitempty"`
}
