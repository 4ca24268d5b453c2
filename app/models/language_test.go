package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageValidation(t *testing.T) {
	tests := []struct {
		name     string
		language Language
		wantErr  bool
	}{
		{"valid", Language{Name: "English", LanguageCulture: "en-US", UniqueSeoCode: "en"}, false},
		{"missing name", Language{LanguageCulture: "en-US", UniqueSeoCode: "en"}, true},
		{"long seo code", Language{Name: "English", LanguageCulture: "en-US", UniqueSeoCode: "eng"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.language.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreValidation(t *testing.T) {
	assert.NoError(t, (&Store{Name: "Main", URL: "http://localhost:8080/"}).Validate())
	assert.Error(t, (&Store{Name: "Main", URL: "not a url"}).Validate())
	assert.Error(t, (&Store{URL: "http://localhost:8080/"}).Validate())
}
