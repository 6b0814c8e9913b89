package store_test

import (
	"context"
	"testing"

	"github.com/akolanti/ProductChat/internal/data/redisStore"
	"github.com/akolanti/ProductChat/internal/data/store"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStores(t *testing.T) (*store.RedisProjectStore, *store.RedisDocumentStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	internal := redisStore.NewTestStore(client)
	return store.TestProjectStore(internal), store.TestDocumentStore(internal)
}

func TestRedisProjectStore_Lifecycle(t *testing.T) {
	projects, _ := newTestStores(t)
	ctx := context.Background()

	project := commonModels.Project{
		Id:          "proj-1",
		Name:        "Widget Cloud",
		Slug:        "widget-cloud",
		Description: "sells widgets",
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := projects.SaveProject(ctx, project); err != nil {
			t.Fatalf("SaveProject failed: %v", err)
		}

		got, found := projects.GetProject(ctx, "proj-1")
		if !found {
			t.Fatal("Project was saved but not found")
		}
		if got.Name != project.Name || got.Slug != project.Slug {
			t.Errorf("Data mismatch: %+v", got)
		}
	})

	t.Run("Lookup by slug", func(t *testing.T) {
		got, found := projects.GetProjectBySlug(ctx, "widget-cloud")
		if !found || got.Id != "proj-1" {
			t.Errorf("slug lookup failed: found=%v got=%+v", found, got)
		}
	})

	t.Run("List includes saved project", func(t *testing.T) {
		all, err := projects.ListProjects(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 1 || all[0].Id != "proj-1" {
			t.Errorf("unexpected listing: %+v", all)
		}
	})

	t.Run("Delete removes project and slug", func(t *testing.T) {
		if !projects.DeleteProject(ctx, "proj-1") {
			t.Fatal("DeleteProject returned false")
		}
		if _, found := projects.GetProject(ctx, "proj-1"); found {
			t.Error("project still present after delete")
		}
		if _, found := projects.GetProjectBySlug(ctx, "widget-cloud"); found {
			t.Error("slug still resolves after delete")
		}
	})

	t.Run("Delete non-existent returns false", func(t *testing.T) {
		if projects.DeleteProject(ctx, "ghost") {
			t.Error("expected false for unknown project")
		}
	})
}

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	_, docs := newTestStores(t)
	ctx := context.Background()

	doc := commonModels.Document{
		Id:        "doc-1",
		ProjectId: "proj-1",
		Name:      "Guide",
		FileName:  "guide.pdf",
		Content:   "widgets are blue",
	}

	if err := docs.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	got, found := docs.GetDocument(ctx, "doc-1")
	if !found || got.Content != "widgets are blue" {
		t.Fatalf("roundtrip failed: found=%v got=%+v", found, got)
	}

	listed, err := docs.ListDocuments(ctx, "proj-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].Id != "doc-1" {
		t.Errorf("unexpected listing: %+v", listed)
	}

	if listed, _ := docs.ListDocuments(ctx, "other-project"); len(listed) != 0 {
		t.Errorf("documents leaked across projects: %+v", listed)
	}

	if !docs.DeleteDocument(ctx, "doc-1") {
		t.Fatal("DeleteDocument returned false")
	}
	if listed, _ := docs.ListDocuments(ctx, "proj-1"); len(listed) != 0 {
		t.Errorf("delete left the document listed: %+v", listed)
	}
}
