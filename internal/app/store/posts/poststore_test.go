package poststore_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	poststore "github.com/dalemusser/ripple/internal/app/store/posts"
	"github.com/dalemusser/ripple/internal/app/system/paging"
	"github.com/dalemusser/ripple/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")

	created, err := store.Create(ctx, alice.ID, "  hello <b>world</b>  ", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Text != "hello world" {
		t.Errorf("Text: got %q, want trimmed and stripped %q", created.Text, "hello world")
	}
	if created.PostedBy != alice.ID {
		t.Errorf("PostedBy: got %v, want %v", created.PostedBy, alice.ID)
	}
	if created.Likes == nil || len(created.Likes) != 0 {
		t.Error("expected Likes to start as empty array")
	}
	if created.Comments == nil || len(created.Comments) != 0 {
		t.Error("expected Comments to start as empty array")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")

	if _, err := store.Create(ctx, alice.ID, "   ", ""); !errors.Is(err, poststore.ErrInvalidInput) {
		t.Errorf("blank text: expected ErrInvalidInput, got %v", err)
	}
	long := strings.Repeat("x", 1001)
	if _, err := store.Create(ctx, alice.ID, long, ""); !errors.Is(err, poststore.ErrInvalidInput) {
		t.Errorf("oversized text: expected ErrInvalidInput, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	post := fixtures.CreatePost(ctx, alice.ID, "to be deleted")

	// Only the author may delete.
	if _, err := store.Delete(ctx, post.ID, bob.ID); !errors.Is(err, poststore.ErrNotPostAuthor) {
		t.Errorf("non-author delete: expected ErrNotPostAuthor, got %v", err)
	}

	deleted, err := store.Delete(ctx, post.ID, alice.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.ID != post.ID {
		t.Errorf("deleted ID: got %v, want %v", deleted.ID, post.ID)
	}

	if _, err := store.GetByID(ctx, post.ID); !errors.Is(err, poststore.ErrNotFound) {
		t.Errorf("after delete: expected ErrNotFound, got %v", err)
	}
	if _, err := store.Delete(ctx, post.ID, alice.ID); !errors.Is(err, poststore.ErrNotFound) {
		t.Errorf("repeat delete: expected ErrNotFound, got %v", err)
	}
}

func TestStore_Like(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	post := fixtures.CreatePost(ctx, alice.ID, "likeable")

	got, err := store.Like(ctx, post.ID, bob.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if len(got.Likes) != 1 || got.Likes[0] != bob.ID {
		t.Errorf("Likes: got %v, want [bob]", got.Likes)
	}

	// Second like from the same account is a conflict, not a duplicate.
	if _, err := store.Like(ctx, post.ID, bob.ID); !errors.Is(err, poststore.ErrAlreadyLiked) {
		t.Errorf("repeat like: expected ErrAlreadyLiked, got %v", err)
	}
	refreshed, err := store.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(refreshed.Likes) != 1 {
		t.Errorf("expected exactly one like, got %d", len(refreshed.Likes))
	}

	if _, err := store.Like(ctx, primitive.NewObjectID(), bob.ID); !errors.Is(err, poststore.ErrNotFound) {
		t.Errorf("missing post: expected ErrNotFound, got %v", err)
	}
}

func TestStore_Unlike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	post := fixtures.CreatePost(ctx, alice.ID, "likeable")
	fixtures.AddLike(ctx, post.ID, bob.ID)

	got, err := store.Unlike(ctx, post.ID, bob.ID)
	if err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if len(got.Likes) != 0 {
		t.Errorf("Likes: got %v, want empty", got.Likes)
	}

	if _, err := store.Unlike(ctx, post.ID, bob.ID); !errors.Is(err, poststore.ErrNotLiked) {
		t.Errorf("repeat unlike: expected ErrNotLiked, got %v", err)
	}
	if _, err := store.Unlike(ctx, primitive.NewObjectID(), bob.ID); !errors.Is(err, poststore.ErrNotFound) {
		t.Errorf("missing post: expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddComment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	post := fixtures.CreatePost(ctx, alice.ID, "discuss")

	got, err := store.AddComment(ctx, post.ID, bob.ID, " nice <i>post</i> ")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(got.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(got.Comments))
	}
	c := got.Comments[0]
	if c.ID == primitive.NilObjectID {
		t.Error("expected comment ID to be assigned")
	}
	if c.Text != "nice post" {
		t.Errorf("comment text: got %q, want trimmed and stripped", c.Text)
	}
	if c.PostedBy != bob.ID {
		t.Errorf("comment author: got %v, want %v", c.PostedBy, bob.ID)
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected comment CreatedAt to be set")
	}

	if _, err := store.AddComment(ctx, post.ID, bob.ID, "   "); !errors.Is(err, poststore.ErrInvalidInput) {
		t.Errorf("blank comment: expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.AddComment(ctx, primitive.NewObjectID(), bob.ID, "hello"); !errors.Is(err, poststore.ErrNotFound) {
		t.Errorf("missing post: expected ErrNotFound, got %v", err)
	}
}

func TestStore_RemoveComment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	post := fixtures.CreatePost(ctx, alice.ID, "discuss")
	comment := fixtures.AddComment(ctx, post.ID, bob.ID, "my comment")

	// The post author is not the comment author here.
	if _, err := store.RemoveComment(ctx, post.ID, comment.ID, alice.ID); !errors.Is(err, poststore.ErrNotCommentAuthor) {
		t.Errorf("non-author removal: expected ErrNotCommentAuthor, got %v", err)
	}

	got, err := store.RemoveComment(ctx, post.ID, comment.ID, bob.ID)
	if err != nil {
		t.Fatalf("RemoveComment failed: %v", err)
	}
	if len(got.Comments) != 0 {
		t.Errorf("expected comments empty, got %d", len(got.Comments))
	}

	if _, err := store.RemoveComment(ctx, post.ID, comment.ID, bob.ID); !errors.Is(err, poststore.ErrCommentNotFound) {
		t.Errorf("repeat removal: expected ErrCommentNotFound, got %v", err)
	}
	if _, err := store.RemoveComment(ctx, primitive.NewObjectID(), comment.ID, bob.ID); !errors.Is(err, poststore.ErrNotFound) {
		t.Errorf("missing post: expected ErrNotFound, got %v", err)
	}
}

func TestStore_Feed_OrderAndScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	carol := fixtures.CreateAccount(ctx, "carol")

	base := time.Now().UTC().Add(-time.Hour)
	oldest := fixtures.CreatePostAt(ctx, alice.ID, "oldest", base)
	middle := fixtures.CreatePostAt(ctx, bob.ID, "middle", base.Add(10*time.Minute))
	newest := fixtures.CreatePostAt(ctx, alice.ID, "newest", base.Add(20*time.Minute))
	fixtures.CreatePostAt(ctx, carol.ID, "outsider", base.Add(30*time.Minute))

	audience := []primitive.ObjectID{alice.ID, bob.ID}
	got, total, err := store.Feed(ctx, audience, paging.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(got))
	}
	// Reverse chronological; carol's post is out of scope.
	if got[0].ID != newest.ID || got[1].ID != middle.ID || got[2].ID != oldest.ID {
		t.Errorf("order: got [%s %s %s], want [newest middle oldest]",
			got[0].Text, got[1].Text, got[2].Text)
	}
}

func TestStore_Feed_Paging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		fixtures.CreatePostAt(ctx, alice.ID, "post", base.Add(time.Duration(i)*time.Minute))
	}

	audience := []primitive.ObjectID{alice.ID}

	page1, total, err := store.Feed(ctx, audience, paging.Params{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Feed page 1 failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total: got %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Errorf("page 1: got %d posts, want 2", len(page1))
	}

	page3, _, err := store.Feed(ctx, audience, paging.Params{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("Feed page 3 failed: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3: got %d posts, want 1", len(page3))
	}

	// Past the end: empty page, stable total.
	page4, total, err := store.Feed(ctx, audience, paging.Params{Page: 4, Limit: 2})
	if err != nil {
		t.Fatalf("Feed page 4 failed: %v", err)
	}
	if len(page4) != 0 {
		t.Errorf("page 4: got %d posts, want 0", len(page4))
	}
	if total != 5 {
		t.Errorf("total on empty page: got %d, want 5", total)
	}
}

func TestStore_ByAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	fixtures.CreatePost(ctx, alice.ID, "mine")
	fixtures.CreatePost(ctx, bob.ID, "not mine")

	got, total, err := store.ByAuthor(ctx, alice.ID, paging.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ByAuthor failed: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("expected 1 post, got total=%d len=%d", total, len(got))
	}
	if got[0].PostedBy != alice.ID {
		t.Errorf("PostedBy: got %v, want alice", got[0].PostedBy)
	}
}

func TestStore_Like_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateAccount(ctx, "alice")
	bob := fixtures.CreateAccount(ctx, "bob")
	post := fixtures.CreatePost(ctx, alice.ID, "contested")

	// Racing likes from the same account: exactly one wins, the other
	// sees the conflict. Never two stored likes.
	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Like(ctx, post.ID, bob.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, poststore.ErrAlreadyLiked):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != attempts-1 {
		t.Errorf("got %d successes and %d conflicts, want 1 and %d", ok, conflicts, attempts-1)
	}

	refreshed, err := store.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(refreshed.Likes) != 1 {
		t.Errorf("expected exactly one stored like, got %d", len(refreshed.Likes))
	}
}
