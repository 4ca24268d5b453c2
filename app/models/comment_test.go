package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewsCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *NewsComment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &NewsComment{
				NewsItemID:   1,
				CustomerID:   2,
				CommentTitle: "Great",
				CommentText:  "Looking forward to it",
				CreatedOnUtc: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing news item",
			comment: &NewsComment{
				CommentText:  "Text",
				CreatedOnUtc: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty text",
			comment: &NewsComment{
				NewsItemID:   1,
				CreatedOnUtc: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &NewsComment{
				NewsItemID:  1,
				CommentText: "Text",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewsCommentBeforeCreate(t *testing.T) {
	comment := &NewsComment{NewsItemID: 1, CommentText: "Text"}

	assert.True(t, comment.CreatedOnUtc.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedOnUtc.IsZero())
}

func TestNewsCommentSetCustomer(t *testing.T) {
	comment := &NewsComment{ID: 1, CommentText: "Text"}

	t.Run("valid customer", func(t *testing.T) {
		customer := &Customer{ID: 7, Username: "jdoe"}
		err := comment.SetCustomer(customer)
		assert.NoError(t, err)
		assert.Equal(t, customer, comment.Customer)
		assert.Equal(t, 7, comment.CustomerID)
	})

	t.Run("nil customer", func(t *testing.T) {
		err := comment.SetCustomer(nil)
		assert.Error(t, err)
	})
}
