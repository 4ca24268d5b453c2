package services

import (
	"context"
	"errors"

	"storenews/app/repositories"
)

// URLRecordService resolves search engine friendly names of entities.
type URLRecordService struct {
	records   repositories.URLRecordRepository
	languages repositories.LanguageRepository
}

func NewURLRecordService(records repositories.URLRecordRepository, languages repositories.LanguageRepository) *URLRecordService {
	return &URLRecordService{records: records, languages: languages}
}

// GetSeName returns the active slug of an entity in a language. When no localized
// slug exists and returnDefault is set, the standard slug (language 0) is used.
// With ensureTwoPublishedLanguages the localized slug is only consulted on
// multilingual storefronts.
func (s *URLRecordService) GetSeName(ctx context.Context, entityName string, entityID, languageID int, returnDefault, ensureTwoPublishedLanguages bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := ""
	if languageID > 0 {
		loadLocalized := true
		if ensureTwoPublishedLanguages {
			published, err := s.languages.List(false)
			if err != nil {
				return "", err
			}
			loadLocalized = len(published) >= 2
		}

		if loadLocalized {
			slug, err := s.activeSlug(entityName, entityID, languageID)
			if err != nil {
				return "", err
			}
			result = slug
		}
	}

	if result == "" && returnDefault {
		slug, err := s.activeSlug(entityName, entityID, 0)
		if err != nil {
			return "", err
		}
		result = slug
	}
	return result, nil
}

func (s *URLRecordService) activeSlug(entityName string, entityID, languageID int) (string, error) {
	record, err := s.records.Find(entityName, entityID, languageID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !record.IsActive {
		return "", nil
	}
	return record.Slug, nil
}
