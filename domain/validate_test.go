package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResumeJSON(t *testing.T, mutate func(m map[string]interface{})) json.RawMessage {
	t.Helper()
	payload := map[string]interface{}{
		"personalInfo": map[string]interface{}{
			"name":  "John Doe",
			"email": "john@example.com",
			"phone": "+1234567890",
		},
		"professional_summary": "Experienced software engineer.",
		"experience": []map[string]interface{}{{
			"title":     "Software Engineer",
			"company":   "Tech Corp",
			"startDate": "2020-01",
			"endDate":   "Present",
			"details":   []string{"Developed features"},
		}},
		"education": []map[string]interface{}{{
			"degree":      "Bachelor of Science",
			"institution": "Example University",
			"date":        "2020",
		}},
		"technologies_and_skills": []string{"Go", "SQL"},
	}
	if mutate != nil {
		mutate(payload)
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestDecodeResumeDataValid(t *testing.T) {
	data, err := DecodeResumeData(validResumeJSON(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "John Doe", data.PersonalInfo.Name)
	assert.Len(t, data.Experience, 1)
	assert.Equal(t, []string{"Go", "SQL"}, data.TechnologiesAndSkills.Flat)
}

func TestDecodeResumeDataMalformedJSON(t *testing.T) {
	_, err := DecodeResumeData(json.RawMessage(`{"personalInfo":`))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestDecodeResumeDataMissingRequiredFields(t *testing.T) {
	raw := validResumeJSON(t, func(m map[string]interface{}) {
		m["personalInfo"] = map[string]interface{}{}
	})
	_, err := DecodeResumeData(raw)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, strings.ToLower(err.Error()), "required")
}

func TestDecodeResumeDataInvalidEmail(t *testing.T) {
	raw := validResumeJSON(t, func(m map[string]interface{}) {
		m["personalInfo"].(map[string]interface{})["email"] = "invalid-email"
	})
	_, err := DecodeResumeData(raw)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, strings.ToLower(err.Error()), "email")
}

func TestDecodeResumeDataDates(t *testing.T) {
	cases := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   bool
	}{
		{"month precision", "2020-01", "2021-06", false},
		{"day precision", "2020-01-15", "2021-06-30", false},
		{"present end date", "2020-01", "Present", false},
		{"garbage start date", "invalid-date", "Present", true},
		{"bare year", "2020", "Present", true},
		{"month out of range", "2020-13", "Present", true},
		{"garbage end date", "2020-01", "later", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validResumeJSON(t, func(m map[string]interface{}) {
				exp := m["experience"].([]map[string]interface{})[0]
				exp["startDate"] = tc.startDate
				exp["endDate"] = tc.endDate
			})
			_, err := DecodeResumeData(raw)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.Contains(t, strings.ToLower(err.Error()), "date")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeResumeDataEmptyArrays(t *testing.T) {
	raw := validResumeJSON(t, func(m map[string]interface{}) {
		m["experience"] = []map[string]interface{}{}
		m["education"] = []map[string]interface{}{}
	})
	_, err := DecodeResumeData(raw)
	assert.NoError(t, err)
}

func TestDecodeCoverLetterDataValid(t *testing.T) {
	raw := json.RawMessage(`{
		"personalInfo": {"name": "John Doe", "email": "john@example.com"},
		"content": "Dear Hiring Manager,\n\nI am writing to apply."
	}`)
	data, err := DecodeCoverLetterData(raw)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", data.PersonalInfo.Name)
	assert.Contains(t, data.Content, "Dear Hiring Manager")
}

func TestDecodeCoverLetterDataMissingContent(t *testing.T) {
	raw := json.RawMessage(`{
		"personalInfo": {"name": "John Doe", "email": "john@example.com"}
	}`)
	_, err := DecodeCoverLetterData(raw)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "content")
}
