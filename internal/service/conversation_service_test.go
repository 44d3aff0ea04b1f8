package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopping-chat-be/internal/dto"
	"shopping-chat-be/internal/model"
	"shopping-chat-be/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeConversationRepo struct {
	saved     []*model.ChatMessage
	messages  []*model.ChatMessage
	findCalls int
	deleted   int64
	err       error
}

func (f *fakeConversationRepo) EnsureIndexes(ctx context.Context) error { return f.err }

func (f *fakeConversationRepo) Save(ctx context.Context, message *model.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	message.Id = primitive.NewObjectID()
	f.saved = append(f.saved, message)
	return nil
}

func (f *fakeConversationRepo) FindByUser(ctx context.Context, userId primitive.ObjectID, limit int64, before time.Time) ([]*model.ChatMessage, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < int64(len(f.messages)) {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func (f *fakeConversationRepo) DeleteByUser(ctx context.Context, userId primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

func (f *fakeConversationRepo) CountByUser(ctx context.Context, userId primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.messages)), nil
}

const testUserId = "507f1f77bcf86cd799439011"

func TestSaveAppliesMetadataDefaults(t *testing.T) {
	repo := &fakeConversationRepo{}
	svc := NewConversationService(repo, noopLogger{})

	saved, err := svc.Save(context.Background(), testUserId, &dto.SaveConversationRequest{
		Query:    "show books",
		Response: "Showing books",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Source != "webapp" || saved.Page != "dashboard" {
		t.Errorf("defaults: source=%q page=%q", saved.Source, saved.Page)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}

	saved, err = svc.Save(context.Background(), testUserId, &dto.SaveConversationRequest{
		Query:    "what's my email?",
		Response: "ada@example.com",
		Metadata: &dto.ChatMetadata{Source: "extension", Page: "settings"},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Source != "extension" || saved.Page != "settings" {
		t.Errorf("metadata not honored: source=%q page=%q", saved.Source, saved.Page)
	}
}

func TestSaveRejectsInvalidUserId(t *testing.T) {
	repo := &fakeConversationRepo{}
	svc := NewConversationService(repo, noopLogger{})

	_, err := svc.Save(context.Background(), "not-an-object-id", &dto.SaveConversationRequest{
		Query:    "q",
		Response: "r",
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("kind = %q, want validation", apperrors.KindOf(err))
	}
	if len(repo.saved) != 0 {
		t.Error("nothing may be saved for an invalid user id")
	}
}

func TestListCachesUnpaginatedFetches(t *testing.T) {
	repo := &fakeConversationRepo{
		messages: []*model.ChatMessage{
			{Id: primitive.NewObjectID(), Query: "q1", Response: "r1", CreatedAt: time.Now()},
			{Id: primitive.NewObjectID(), Query: "q2", Response: "r2", CreatedAt: time.Now()},
		},
	}
	svc := NewConversationService(repo, noopLogger{})

	items, err := svc.List(context.Background(), testUserId, 0, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}

	if _, err := svc.List(context.Background(), testUserId, 0, nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.findCalls != 1 {
		t.Errorf("findCalls = %d, identical fetch must hit the cache", repo.findCalls)
	}

	before := time.Now()
	if _, err := svc.List(context.Background(), testUserId, 0, &before); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.findCalls != 2 {
		t.Errorf("findCalls = %d, paginated fetch must bypass the cache", repo.findCalls)
	}
}

func TestListCacheInvalidatedOnSave(t *testing.T) {
	repo := &fakeConversationRepo{}
	svc := NewConversationService(repo, noopLogger{})

	if _, err := svc.List(context.Background(), testUserId, 0, nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := svc.Save(context.Background(), testUserId, &dto.SaveConversationRequest{Query: "q", Response: "r"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := svc.List(context.Background(), testUserId, 0, nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.findCalls != 2 {
		t.Errorf("findCalls = %d, save must invalidate the cache", repo.findCalls)
	}
}

func TestListClampsLimit(t *testing.T) {
	messages := make([]*model.ChatMessage, 150)
	for i := range messages {
		messages[i] = &model.ChatMessage{Id: primitive.NewObjectID(), CreatedAt: time.Now()}
	}
	repo := &fakeConversationRepo{messages: messages}
	svc := NewConversationService(repo, noopLogger{})

	items, err := svc.List(context.Background(), testUserId, 500, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 100 {
		t.Errorf("len = %d, limit must clamp to 100", len(items))
	}
}

func TestClear(t *testing.T) {
	repo := &fakeConversationRepo{deleted: 7}
	svc := NewConversationService(repo, noopLogger{})

	deleted, err := svc.Clear(context.Background(), testUserId)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if deleted != 7 {
		t.Errorf("deleted = %d", deleted)
	}
}

func TestRepositoryErrorsSurfaceAsInternal(t *testing.T) {
	repo := &fakeConversationRepo{err: errors.New("connection reset")}
	svc := NewConversationService(repo, noopLogger{})

	if _, err := svc.List(context.Background(), testUserId, 0, nil); apperrors.KindOf(err) != apperrors.KindInternal {
		t.Errorf("List kind = %q, want internal", apperrors.KindOf(err))
	}
	if _, err := svc.Clear(context.Background(), testUserId); apperrors.KindOf(err) != apperrors.KindInternal {
		t.Errorf("Clear kind = %q, want internal", apperrors.KindOf(err))
	}
	if _, err := svc.Status(context.Background(), testUserId); apperrors.KindOf(err) != apperrors.KindInternal {
		t.Errorf("Status kind = %q, want internal", apperrors.KindOf(err))
	}
}

func TestHistoryStatus(t *testing.T) {
	repo := &fakeConversationRepo{
		messages: []*model.ChatMessage{{Id: primitive.NewObjectID()}},
	}
	svc := NewConversationService(repo, noopLogger{})

	status, err := svc.Status(context.Background(), testUserId)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Status != "ok" || status.MessageCount != 1 || status.UserId != testUserId {
		t.Errorf("status = %+v", status)
	}
}
