package repositories

import "storenews/app/models"

// NewsRepository defines the interface for news item data access
type NewsRepository interface {
	Create(item *models.NewsItem) error
	GetByID(id int) (*models.NewsItem, error)
	List() ([]*models.NewsItem, error)
	Update(item *models.NewsItem) error
	Delete(id int) error
}

// NewsCommentRepository defines the interface for news comment data access
type NewsCommentRepository interface {
	Create(comment *models.NewsComment) error
	GetByID(id int) (*models.NewsComment, error)
	ListByNewsItem(newsItemID int) ([]*models.NewsComment, error)
	Update(comment *models.NewsComment) error
	Delete(id int) error
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id int) (*models.Customer, error)
	Update(customer *models.Customer) error
}

// PictureRepository defines the interface for picture metadata access
type PictureRepository interface {
	Create(picture *models.Picture) error
	GetByID(id int) (*models.Picture, error)
}

// URLRecordRepository defines the interface for search engine name lookups
type URLRecordRepository interface {
	Create(record *models.URLRecord) error
	Find(entityName string, entityID, languageID int) (*models.URLRecord, error)
}

// LanguageRepository defines the interface for language data access
type LanguageRepository interface {
	Create(language *models.Language) error
	GetByID(id int) (*models.Language, error)
	List(showHidden bool) ([]*models.Language, error)
}

// StoreRepository defines the interface for store data access
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id int) (*models.Store, error)
	List() ([]*models.Store, error)
}
