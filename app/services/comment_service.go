package services

import (
	"context"
	"errors"
	"fmt"

	"storenews/app/events"
	"storenews/app/models"
)

// ErrCommentsNotAllowed is returned when commenting on a news item that does not accept comments
var ErrCommentsNotAllowed = errors.New("comments are not allowed for this news item")

// InsertComment creates a comment on an existing news item
func (s *NewsService) InsertComment(ctx context.Context, comment *models.NewsComment) error {
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}

	item, err := s.newsRepo.GetByID(comment.NewsItemID)
	if err != nil {
		return err
	}
	if !item.AllowComments {
		return ErrCommentsNotAllowed
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return err
	}

	s.publishComment(ctx, events.ActionInserted, comment)
	return nil
}

// ApproveComment marks a comment as approved so it is shown to visitors
func (s *NewsService) ApproveComment(ctx context.Context, id int) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment.IsApproved {
		return nil
	}

	comment.IsApproved = true
	if err := s.commentRepo.Update(comment); err != nil {
		return err
	}

	s.publishComment(ctx, events.ActionUpdated, comment)
	return nil
}

// DeleteComment deletes a comment
func (s *NewsService) DeleteComment(ctx context.Context, id int) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return err
	}

	s.publishComment(ctx, events.ActionDeleted, comment)
	return nil
}

func (s *NewsService) publishComment(ctx context.Context, action events.Action, comment *models.NewsComment) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     events.EntityNewsComment,
		Action:     action,
		ID:         comment.ID,
		NewsItemID: comment.NewsItemID,
	})
}
