package store

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"folio/internal/models"
)

func TestPostCreateAndFind(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	now := time.Now()
	created := createTestPost(t, db, &models.Post{
		Title:       "First Post",
		Slug:        "first-post",
		Excerpt:     "A short excerpt.",
		Body:        "Hello world.",
		AuthorID:    author.ID,
		Status:      models.StatusPublished,
		ReadingTime: 1,
		PublishedAt: &now,
	})

	if created.ID == uuid.Nil {
		t.Fatal("expected created post to have an ID")
	}
	if created.ViewCount != 0 {
		t.Errorf("new post view count: got %d, want 0", created.ViewCount)
	}

	found, err := posts.FindPublishedBySlug("first-post")
	if err != nil {
		t.Fatalf("FindPublishedBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find published post by slug")
	}
	if found.Title != "First Post" {
		t.Errorf("title: got %q", found.Title)
	}

	missing, err := posts.FindPublishedBySlug("does-not-exist")
	if err != nil {
		t.Fatalf("FindPublishedBySlug(missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown slug")
	}
}

func TestPostDraftInvisibleToPublicLookup(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	createTestPost(t, db, &models.Post{
		Title:    "Draft Post",
		Slug:     "draft-post",
		AuthorID: author.ID,
		Status:   models.StatusDraft,
	})

	found, err := posts.FindPublishedBySlug("draft-post")
	if err != nil {
		t.Fatalf("FindPublishedBySlug: %v", err)
	}
	if found != nil {
		t.Error("draft must not be visible through the published lookup")
	}

	// The owner-facing lookup still sees it.
	owned, err := posts.FindBySlug("draft-post")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if owned == nil {
		t.Error("expected FindBySlug to see the draft")
	}
}

func TestPostSlugExists(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	created := createTestPost(t, db, &models.Post{
		Title: "Taken", Slug: "taken", AuthorID: author.ID, Status: models.StatusDraft,
	})

	exists, err := posts.SlugExists("taken", uuid.Nil)
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if !exists {
		t.Error("expected slug to be reported taken")
	}

	// Excluding the owning post itself frees the slug for updates.
	exists, err = posts.SlugExists("taken", created.ID)
	if err != nil {
		t.Fatalf("SlugExists with exclude: %v", err)
	}
	if exists {
		t.Error("slug should not count against its own post")
	}
}

func TestPostSlugUniqueViolation(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	createTestPost(t, db, &models.Post{
		Title: "One", Slug: "same-slug", AuthorID: author.ID, Status: models.StatusDraft,
	})

	_, err := posts.Create(&models.Post{
		Title: "Two", Slug: "same-slug", AuthorID: author.ID, Status: models.StatusDraft,
	})
	if err == nil {
		t.Fatal("expected unique violation for duplicate slug")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected IsUniqueViolation to match, got: %v", err)
	}
}

func TestPostListPublishedFilters(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)
	tags := NewTagStore(db)
	cat := createTestCategory(t, db, models.CategoryKindBlog, "Go", "go")

	now := time.Now()
	inCat := createTestPost(t, db, &models.Post{
		Title: "Go Generics", Slug: "go-generics", Excerpt: "About generics",
		AuthorID: author.ID, CategoryID: &cat.ID,
		Status: models.StatusPublished, PublishedAt: &now,
	})
	other := createTestPost(t, db, &models.Post{
		Title: "Rust Ownership", Slug: "rust-ownership", Excerpt: "Borrow checker",
		AuthorID: author.ID, Status: models.StatusPublished, PublishedAt: &now,
	})
	createTestPost(t, db, &models.Post{
		Title: "Hidden Draft", Slug: "hidden-draft",
		AuthorID: author.ID, Status: models.StatusDraft,
	})

	all, err := posts.ListPublished(PostFilters{})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered list: got %d posts, want 2", len(all))
	}

	byCat, err := posts.ListPublished(PostFilters{CategorySlug: "go"})
	if err != nil {
		t.Fatalf("ListPublished by category: %v", err)
	}
	if len(byCat) != 1 || byCat[0].ID != inCat.ID {
		t.Errorf("category filter: got %d posts", len(byCat))
	}
	if byCat[0].Category == nil || byCat[0].Category.Slug != "go" {
		t.Error("expected joined category on filtered result")
	}

	bySearch, err := posts.ListPublished(PostFilters{Search: "ownership"})
	if err != nil {
		t.Fatalf("ListPublished by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != other.ID {
		t.Errorf("search filter: got %d posts", len(bySearch))
	}

	// A post with several matching tags must appear once.
	tagA, err := tags.FindOrCreate("concurrency", "concurrency")
	if err != nil {
		t.Fatalf("FindOrCreate tag: %v", err)
	}
	if err := posts.SetTags(inCat.ID, []uuid.UUID{tagA.ID}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	byTag, err := posts.ListPublished(PostFilters{Tag: "concurrency"})
	if err != nil {
		t.Fatalf("ListPublished by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != inCat.ID {
		t.Errorf("tag filter: got %d posts", len(byTag))
	}
	if len(byTag[0].Tags) != 1 || byTag[0].Tags[0].Name != "concurrency" {
		t.Error("expected tags attached to listed post")
	}

	// Conjunctive filters: category + search that match different posts
	// yield nothing.
	none, err := posts.ListPublished(PostFilters{CategorySlug: "go", Search: "ownership"})
	if err != nil {
		t.Fatalf("ListPublished conjunctive: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("conjunctive filters: got %d posts, want 0", len(none))
	}
}

func TestPostFeaturedOrdering(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now()
	createTestPost(t, db, &models.Post{
		Title: "Plain New", Slug: "plain-new", AuthorID: author.ID,
		Status: models.StatusPublished, PublishedAt: &newer,
	})
	createTestPost(t, db, &models.Post{
		Title: "Featured Old", Slug: "featured-old", AuthorID: author.ID,
		Status: models.StatusPublished, Featured: true, PublishedAt: &older,
	})

	list, err := posts.ListPublished(PostFilters{})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d posts, want 2", len(list))
	}
	// Featured wins over recency.
	if list[0].Slug != "featured-old" {
		t.Errorf("first post: got %q, want featured-old", list[0].Slug)
	}
}

func TestPostListFeaturedCap(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	now := time.Now()
	for _, slug := range []string{"f1", "f2", "f3"} {
		createTestPost(t, db, &models.Post{
			Title: slug, Slug: slug, AuthorID: author.ID,
			Status: models.StatusPublished, Featured: true, PublishedAt: &now,
		})
	}

	featured, err := posts.ListFeatured(2)
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	if len(featured) != 2 {
		t.Errorf("featured cap: got %d, want 2", len(featured))
	}
}

func TestPostIncrementViewCountConcurrent(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	now := time.Now()
	p := createTestPost(t, db, &models.Post{
		Title: "Popular", Slug: "popular", AuthorID: author.ID,
		Status: models.StatusPublished, PublishedAt: &now,
	})

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := posts.IncrementViewCount(p.ID); err != nil {
				t.Errorf("IncrementViewCount: %v", err)
			}
		}()
	}
	wg.Wait()

	reloaded, err := posts.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reloaded.ViewCount != workers {
		t.Errorf("view count after %d concurrent increments: got %d", workers, reloaded.ViewCount)
	}
}

func TestPostUpdate(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	p := createTestPost(t, db, &models.Post{
		Title: "Before", Slug: "stable-slug", AuthorID: author.ID, Status: models.StatusDraft,
	})

	now := time.Now()
	p.Title = "After"
	p.Status = models.StatusPublished
	p.PublishedAt = &now
	if err := posts.Update(p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, err := posts.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reloaded.Title != "After" {
		t.Errorf("title after update: got %q", reloaded.Title)
	}
	if reloaded.Slug != "stable-slug" {
		t.Errorf("slug changed on update: got %q", reloaded.Slug)
	}
	if reloaded.PublishedAt == nil {
		t.Error("expected published_at to be set")
	}
}

func TestPostSearchMatchesWildcardsLiterally(t *testing.T) {
	db := testDB(t)
	author := createTestUser(t, db)
	posts := NewPostStore(db)

	now := time.Now()
	percent := createTestPost(t, db, &models.Post{
		Title: "100% Test Coverage", Slug: "full-coverage",
		AuthorID: author.ID, Status: models.StatusPublished, PublishedAt: &now,
	})
	underscore := createTestPost(t, db, &models.Post{
		Title: "The snake_case Debate", Slug: "snake-case-debate",
		AuthorID: author.ID, Status: models.StatusPublished, PublishedAt: &now,
	})
	// Would match both "%" as match-everything and "e_case" via "e Case".
	createTestPost(t, db, &models.Post{
		Title: "The Case for Go", Slug: "the-case-for-go",
		AuthorID: author.ID, Status: models.StatusPublished, PublishedAt: &now,
	})

	// "%" is a literal character in the search term, not match-everything.
	byPercent, err := posts.ListPublished(PostFilters{Search: "%"})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(byPercent) != 1 || byPercent[0].ID != percent.ID {
		t.Errorf("%% search: got %d posts, want just the literal match", len(byPercent))
	}

	// "_" must not act as a single-character wildcard.
	byUnderscore, err := posts.ListPublished(PostFilters{Search: "e_case"})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(byUnderscore) != 1 || byUnderscore[0].ID != underscore.ID {
		t.Errorf("_ search: got %d posts, want just the literal match", len(byUnderscore))
	}
}
