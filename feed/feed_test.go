package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/papacapim/server/auth"
	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
)

type fakeSource struct {
	followed map[string][]string
	scans    []store.PostScan
	posts    []models.Post
}

func (f *fakeSource) FollowedLogins(_ context.Context, login string) ([]string, error) {
	return f.followed[login], nil
}

func (f *fakeSource) ScanPosts(_ context.Context, q store.PostScan) ([]models.Post, error) {
	f.scans = append(f.scans, q)
	return f.posts, nil
}

type fakeResolver map[string]string

func (r fakeResolver) Resolve(_ context.Context, token string) (string, error) {
	if login, ok := r[token]; ok {
		return login, nil
	}
	return "", auth.ErrUnauthenticated
}

func TestListPostsTimeline(t *testing.T) {
	src := &fakeSource{posts: []models.Post{{ID: 1}}}
	c := NewComposer(src, fakeResolver{})

	got, err := c.ListPosts(context.Background(), Query{Page: 3, Search: "  tea "})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(src.scans) != 1 {
		t.Fatalf("posts=%d scans=%d", len(got), len(src.scans))
	}
	scan := src.scans[0]
	if scan.Page != 3 || scan.Search != "tea" || scan.Authors != nil {
		t.Fatalf("scan = %+v", scan)
	}
}

func TestListPostsFeedScopesToFollowed(t *testing.T) {
	src := &fakeSource{followed: map[string][]string{"alice": {"x", "y"}}}
	c := NewComposer(src, fakeResolver{"tok": "alice"})

	if _, err := c.ListPosts(context.Background(), Query{Page: 1, Feed: true, Search: "hi", Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	scan := src.scans[0]
	if len(scan.Authors) != 2 || scan.Authors[0] != "x" || scan.Authors[1] != "y" {
		t.Fatalf("authors = %v", scan.Authors)
	}
	if scan.Search != "hi" {
		t.Fatalf("search dropped in feed mode: %+v", scan)
	}
}

func TestListPostsFeedWithoutFollowsSkipsScan(t *testing.T) {
	src := &fakeSource{posts: []models.Post{{ID: 1}, {ID: 2}}}
	c := NewComposer(src, fakeResolver{"tok": "loner"})

	got, err := c.ListPosts(context.Background(), Query{Page: 1, Feed: true, Token: "tok"})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
	if len(src.scans) != 0 {
		t.Fatal("scan must be skipped when nobody is followed")
	}
}

func TestListPostsFeedRequiresSession(t *testing.T) {
	src := &fakeSource{}
	c := NewComposer(src, fakeResolver{})

	for _, token := range []string{"", "unknown"} {
		_, err := c.ListPosts(context.Background(), Query{Page: 1, Feed: true, Token: token})
		if !errors.Is(err, auth.ErrUnauthenticated) {
			t.Fatalf("token %q: err = %v", token, err)
		}
	}
	if len(src.scans) != 0 {
		t.Fatal("no scan without a session")
	}
}

func TestListRepliesAndUserPosts(t *testing.T) {
	src := &fakeSource{}
	c := NewComposer(src, fakeResolver{})

	if _, err := c.ListReplies(context.Background(), 7, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListUserPosts(context.Background(), "bob", 1); err != nil {
		t.Fatal(err)
	}
	replies, byUser := src.scans[0], src.scans[1]
	if replies.ParentID == nil || *replies.ParentID != 7 || replies.Page != 2 {
		t.Fatalf("replies scan = %+v", replies)
	}
	if byUser.Author != "bob" || byUser.Search != "" || byUser.Authors != nil {
		t.Fatalf("user scan = %+v", byUser)
	}
}
