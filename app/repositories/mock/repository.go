package mock

import (
	"fmt"
	"sort"
	"sync"

	"storenews/app/models"
	"storenews/app/repositories"
)

type NewsRepository struct {
	items  map[int]*models.NewsItem
	nextID int
	mutex  sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

type NewsCommentRepository struct {
	comments map[int]*models.NewsComment
	nextID   int
	mutex    sync.RWMutex

	Err error
}

type CustomerRepository struct {
	customers map[int]*models.Customer
	nextID    int
	mutex     sync.RWMutex
}

type PictureRepository struct {
	pictures map[int]*models.Picture
	nextID   int
	mutex    sync.RWMutex
}

type URLRecordRepository struct {
	records map[string]*models.URLRecord
	nextID  int
	mutex   sync.RWMutex
}

type LanguageRepository struct {
	languages map[int]*models.Language
	nextID    int
	mutex     sync.RWMutex
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{
		items:  make(map[int]*models.NewsItem),
		nextID: 1,
	}
}

func (m *NewsRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.items = make(map[int]*models.NewsItem)
	m.nextID = 1
}

func NewNewsCommentRepository() *NewsCommentRepository {
	return &NewsCommentRepository{
		comments: make(map[int]*models.NewsComment),
		nextID:   1,
	}
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int]*models.Customer),
		nextID:    1,
	}
}

func NewPictureRepository() *PictureRepository {
	return &PictureRepository{
		pictures: make(map[int]*models.Picture),
		nextID:   1,
	}
}

func NewURLRecordRepository() *URLRecordRepository {
	return &URLRecordRepository{
		records: make(map[string]*models.URLRecord),
		nextID:  1,
	}
}

func NewLanguageRepository() *LanguageRepository {
	return &LanguageRepository{
		languages: make(map[int]*models.Language),
		nextID:    1,
	}
}

// NewsRepository implementation
func (m *NewsRepository) Create(item *models.NewsItem) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	item.ID = m.nextID
	m.nextID++
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *NewsRepository) GetByID(id int) (*models.NewsItem, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	item, exists := m.items[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	found := *item
	return &found, nil
}

func (m *NewsRepository) Update(item *models.NewsItem) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.items[item.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *NewsRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.items[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *NewsRepository) List() ([]*models.NewsItem, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	var items []*models.NewsItem
	for id := 1; id <= m.nextID-1; id++ {
		if item, exists := m.items[id]; exists {
			found := *item
			items = append(items, &found)
		}
	}
	return items, nil
}

// NewsCommentRepository implementation
func (m *NewsCommentRepository) Create(comment *models.NewsComment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *NewsCommentRepository) GetByID(id int) (*models.NewsComment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *NewsCommentRepository) Update(comment *models.NewsComment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *NewsCommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *NewsCommentRepository) ListByNewsItem(newsItemID int) ([]*models.NewsComment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	var comments []*models.NewsComment
	for _, comment := range m.comments {
		if comment.NewsItemID == newsItemID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

// CustomerRepository implementation
func (m *CustomerRepository) Create(customer *models.Customer) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	customer.ID = m.nextID
	m.nextID++
	m.customers[customer.ID] = customer
	return nil
}

func (m *CustomerRepository) GetByID(id int) (*models.Customer, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	customer, exists := m.customers[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return customer, nil
}

func (m *CustomerRepository) Update(customer *models.Customer) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.customers[customer.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.customers[customer.ID] = customer
	return nil
}

// PictureRepository implementation
func (m *PictureRepository) Create(picture *models.Picture) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	picture.ID = m.nextID
	m.nextID++
	m.pictures[picture.ID] = picture
	return nil
}

func (m *PictureRepository) GetByID(id int) (*models.Picture, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	picture, exists := m.pictures[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return picture, nil
}

// URLRecordRepository implementation
func urlRecordKey(entityName string, entityID, languageID int) string {
	return fmt.Sprintf("%s:%d:%d", entityName, entityID, languageID)
}

func (m *URLRecordRepository) Create(record *models.URLRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record.ID = m.nextID
	m.nextID++
	m.records[urlRecordKey(record.EntityName, record.EntityID, record.LanguageID)] = record
	return nil
}

func (m *URLRecordRepository) Find(entityName string, entityID, languageID int) (*models.URLRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	record, exists := m.records[urlRecordKey(entityName, entityID, languageID)]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return record, nil
}

// LanguageRepository implementation
func (m *LanguageRepository) Create(language *models.Language) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	language.ID = m.nextID
	m.nextID++
	m.languages[language.ID] = language
	return nil
}

func (m *LanguageRepository) GetByID(id int) (*models.Language, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	language, exists := m.languages[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return language, nil
}

func (m *LanguageRepository) List(showHidden bool) ([]*models.Language, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var languages []*models.Language
	for _, l := range m.languages {
		if showHidden || l.Published {
			languages = append(languages, l)
		}
	}
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].DisplayOrder != languages[j].DisplayOrder {
			return languages[i].DisplayOrder < languages[j].DisplayOrder
		}
		return languages[i].ID < languages[j].ID
	})
	return languages, nil
}

var (
	_ repositories.NewsRepository        = (*NewsRepository)(nil)
	_ repositories.NewsCommentRepository = (*NewsCommentRepository)(nil)
	_ repositories.CustomerRepository    = (*CustomerRepository)(nil)
	_ repositories.PictureRepository     = (*PictureRepository)(nil)
	_ repositories.URLRecordRepository   = (*URLRecordRepository)(nil)
	_ repositories.LanguageRepository    = (*LanguageRepository)(nil)
)
