package interfaces

import "github.com/gin-gonic/gin"

// Static payload schemas served by GET /schema/:document_type. These
// describe the wire shape clients should send in the "data" field.
var resumeSchema = gin.H{
	"schema": gin.H{
		"type":     "object",
		"required": []string{"personalInfo"},
		"properties": gin.H{
			"personalInfo": gin.H{
				"type":     "object",
				"required": []string{"name", "email"},
				"properties": gin.H{
					"name":     gin.H{"type": "string"},
					"email":    gin.H{"type": "string"},
					"phone":    gin.H{"type": "string"},
					"location": gin.H{"type": "string"},
					"website":  gin.H{"type": "string"},
					"linkedin": gin.H{"type": "string"},
				},
			},
			"professional_summary": gin.H{"type": "string"},
			"experience":           gin.H{"type": "array"},
			"education":            gin.H{"type": "array"},
			"projects":             gin.H{"type": "array"},
			"technologies_and_skills": gin.H{
				"description": "either a list of strings or a map of category to skills",
			},
		},
	},
	"example": gin.H{
		"personalInfo": gin.H{
			"name":  "John Doe",
			"email": "john@example.com",
		},
	},
}

var coverLetterSchema = gin.H{
	"schema": gin.H{
		"type":     "object",
		"required": []string{"personalInfo", "content"},
		"properties": gin.H{
			"personalInfo": gin.H{
				"type":     "object",
				"required": []string{"name", "email"},
				"properties": gin.H{
					"name":  gin.H{"type": "string"},
					"email": gin.H{"type": "string"},
				},
			},
			"content": gin.H{"type": "string"},
			"recipient": gin.H{
				"type": "object",
				"properties": gin.H{
					"name":    gin.H{"type": "string"},
					"company": gin.H{"type": "string"},
					"address": gin.H{"type": "array"},
				},
			},
			"date":       gin.H{"type": "string"},
			"salutation": gin.H{"type": "string"},
			"closing":    gin.H{"type": "string"},
		},
	},
	"example": gin.H{
		"personalInfo": gin.H{
			"name":  "John Doe",
			"email": "john@example.com",
		},
		"content": "Dear Hiring Manager,...",
	},
}
