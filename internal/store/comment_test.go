package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"folio/internal/models"
)

func TestCommentCreateStartsUnapproved(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	comments := NewCommentStore(db)

	now := time.Now()
	post := createTestPost(t, db, &models.Post{
		Title: "Commented", Slug: "commented", AuthorID: author.ID,
		Status: models.StatusPublished, PublishedAt: &now,
	})

	c, err := comments.Create(post.ID, "Reader", "reader@example.com", "Great write-up, thanks!")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Approved {
		t.Error("new comments must start unapproved")
	}

	approved, err := comments.ListApprovedByPost(post.ID)
	if err != nil {
		t.Fatalf("ListApprovedByPost: %v", err)
	}
	if len(approved) != 0 {
		t.Errorf("unapproved comment leaked into public list: %d", len(approved))
	}

	pending, err := comments.ListPending()
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("moderation queue: got %d, want 1", len(pending))
	}
	if pending[0].AuthorEmail != "reader@example.com" {
		t.Error("moderation queue should carry the author email")
	}
}

func TestCommentSetApprovedBatch(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	comments := NewCommentStore(db)

	now := time.Now()
	post := createTestPost(t, db, &models.Post{
		Title: "Busy Post", Slug: "busy-post", AuthorID: author.ID,
		Status: models.StatusPublished, PublishedAt: &now,
	})

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		c, err := comments.Create(post.ID, "Reader", "reader@example.com", "Comment body long enough.")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, c.ID)
	}

	n, err := comments.SetApproved(ids[:2], true)
	if err != nil {
		t.Fatalf("SetApproved: %v", err)
	}
	if n != 2 {
		t.Errorf("approved rows: got %d, want 2", n)
	}

	approved, err := comments.ListApprovedByPost(post.ID)
	if err != nil {
		t.Fatalf("ListApprovedByPost: %v", err)
	}
	if len(approved) != 2 {
		t.Errorf("approved list: got %d, want 2", len(approved))
	}

	count, err := comments.CountPending()
	if err != nil {
		t.Fatalf("CountPending: %v", err)
	}
	if count != 1 {
		t.Errorf("pending count: got %d, want 1", count)
	}

	// Empty batch is a no-op, not an error.
	n, err = comments.SetApproved(nil, true)
	if err != nil {
		t.Fatalf("SetApproved(empty): %v", err)
	}
	if n != 0 {
		t.Errorf("empty batch affected %d rows", n)
	}
}

func TestCommentsCascadeWithPost(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	now := time.Now()
	post := createTestPost(t, db, &models.Post{
		Title: "Doomed", Slug: "doomed", AuthorID: author.ID,
		Status: models.StatusPublished, PublishedAt: &now,
	})
	if _, err := comments.Create(post.ID, "Reader", "reader@example.com", "This will vanish with the post."); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := posts.Delete(post.ID); err != nil {
		t.Fatalf("Delete post: %v", err)
	}

	count, err := comments.CountPending()
	if err != nil {
		t.Fatalf("CountPending: %v", err)
	}
	if count != 0 {
		t.Errorf("comments survived post deletion: %d", count)
	}
}
