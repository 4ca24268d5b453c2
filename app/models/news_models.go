package models

import "time"

// NewsItemModel is the view of a single news item.
type NewsItemModel struct {
	ID               int                 `json:"id"`
	SeName           string              `json:"seName"`
	MetaKeywords     string              `json:"metaKeywords"`
	MetaDescription  string              `json:"metaDescription"`
	MetaTitle        string              `json:"metaTitle"`
	Title            string              `json:"title"`
	Short            string              `json:"short"`
	Full             string              `json:"full"`
	AllowComments    bool                `json:"allowComments"`
	NumberOfComments int                 `json:"numberOfComments"`
	CreatedOn        time.Time           `json:"createdOn"`
	Comments         []*NewsCommentModel `json:"comments"`
	AddNewComment    AddNewsCommentModel `json:"addNewComment"`
}

// NewNewsItemModel returns an empty model ready to be prepared.
func NewNewsItemModel() *NewsItemModel {
	return &NewsItemModel{Comments: []*NewsCommentModel{}}
}

// Clone returns a copy whose comment list can be changed without touching m.
func (m *NewsItemModel) Clone() *NewsItemModel {
	c := *m
	c.Comments = make([]*NewsCommentModel, len(m.Comments))
	for i, comment := range m.Comments {
		cc := *comment
		c.Comments[i] = &cc
	}
	return &c
}

// AddNewsCommentModel describes the "leave a comment" form.
type AddNewsCommentModel struct {
	CommentTitle   string `json:"commentTitle"`
	CommentText    string `json:"commentText"`
	DisplayCaptcha bool   `json:"displayCaptcha"`
}

// NewsCommentModel is the view of an approved comment.
type NewsCommentModel struct {
	ID                   int       `json:"id"`
	CustomerID           int       `json:"customerId"`
	CustomerName         string    `json:"customerName"`
	CustomerAvatarURL    string    `json:"customerAvatarUrl,omitempty"`
	CommentTitle         string    `json:"commentTitle"`
	CommentText          string    `json:"commentText"`
	CreatedOn            time.Time `json:"createdOn"`
	AllowViewingProfiles bool      `json:"allowViewingProfiles"`
}

// HomePageNewsItemsModel is the homepage news block. Instances handed out by the
// model factory are copies; the cached original is never modified.
type HomePageNewsItemsModel struct {
	WorkingLanguageID int              `json:"workingLanguageId"`
	NewsItems         []*NewsItemModel `json:"newsItems"`
}

// Clone returns a copy with its own item and comment slices.
func (m *HomePageNewsItemsModel) Clone() *HomePageNewsItemsModel {
	c := &HomePageNewsItemsModel{
		WorkingLanguageID: m.WorkingLanguageID,
		NewsItems:         make([]*NewsItemModel, len(m.NewsItems)),
	}
	for i, item := range m.NewsItems {
		c.NewsItems[i] = item.Clone()
	}
	return c
}

// NewsItemListModel is one page of the news archive.
type NewsItemListModel struct {
	WorkingLanguageID      int                      `json:"workingLanguageId"`
	PagingFilteringContext NewsPagingFilteringModel `json:"pagingFilteringContext"`
	NewsItems              []*NewsItemModel         `json:"newsItems"`
}

// NewsPagingFilteringModel is the archive paging request, filled with the page
// metadata once the page is loaded.
type NewsPagingFilteringModel struct {
	PageableModel
}

// PageableModel holds pagination metadata for list views.
type PageableModel struct {
	PageIndex       int  `json:"pageIndex"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize" validate:"lte=1000"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	FirstItem       int  `json:"firstItem"`
	LastItem        int  `json:"lastItem"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// Validate checks the request part of the paging model. Non-positive values are
// allowed and mean "use the default".
func (m *NewsPagingFilteringModel) Validate() error {
	return validate.Struct(m)
}

// LoadPagedList copies the metadata of pl into m.
func LoadPagedList[T any](m *PageableModel, pl *PagedList[T]) {
	if pl == nil {
		return
	}

	m.FirstItem = pl.PageIndex*pl.PageSize + 1
	m.HasNextPage = pl.HasNextPage()
	m.HasPreviousPage = pl.HasPreviousPage()
	m.LastItem = min(pl.TotalCount, pl.PageIndex*pl.PageSize+pl.PageSize)
	m.PageIndex = pl.PageIndex
	m.PageNumber = pl.PageIndex + 1
	m.PageSize = pl.PageSize
	m.TotalItems = pl.TotalCount
	m.TotalPages = pl.TotalPages
}
