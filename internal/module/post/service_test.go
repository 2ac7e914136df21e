package post

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/transport"
)

func newService(t *testing.T, register func(r *gin.Engine)) *Service {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if register != nil {
		register(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewService(transport.New(transport.Options{BaseURL: srv.URL}))
}

func TestList_SkipConversion(t *testing.T) {
	var gotSkip, gotLimit, gotInstitution string
	svc := newService(t, func(r *gin.Engine) {
		r.GET("/api/posts", func(c *gin.Context) {
			gotSkip = c.Query("skip")
			gotLimit = c.Query("limit")
			gotInstitution = c.Query("institution_id")
			c.JSON(http.StatusOK, gin.H{
				"items": []gin.H{{"id": 1, "title": "hello", "user": gin.H{"id": 2}}},
				"total": 41, "page": 3, "limit": 20,
			})
		})
	})

	res := svc.List(context.Background(), domain.Filter{
		Page:  3,
		Limit: 20,
		Extra: map[string]string{"institution_id": "5"},
	})
	if !res.Success {
		t.Fatalf("list failed: %v", res.Err)
	}
	if gotSkip != "40" || gotLimit != "20" {
		t.Errorf("skip=%q limit=%q, want 40/20", gotSkip, gotLimit)
	}
	if gotInstitution != "5" {
		t.Errorf("institution_id = %q", gotInstitution)
	}
	if res.Data.TotalPages() != 3 {
		t.Errorf("total pages = %d, want 3", res.Data.TotalPages())
	}
}

func TestGet(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.GET("/api/posts/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"id": 7, "title": "hello", "like_count": 3,
				"user": gin.H{"id": 2, "username": "author"},
			})
		})
	})

	res := svc.Get(context.Background(), 7)
	if !res.Success {
		t.Fatalf("get failed: %v", res.Err)
	}
	if res.Data.ID != 7 || res.Data.LikeCount != 3 || res.Data.User.Username != "author" {
		t.Errorf("unexpected post: %+v", res.Data)
	}
	if res.Data.LikedByMe {
		t.Error("LikedByMe must default to false; the backend does not send it")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(t, nil)
	if res := svc.Create(context.Background(), CreatePostRequest{Title: "no content"}); res.Success {
		t.Error("expected validation failure")
	}
}

func TestReactions(t *testing.T) {
	var calls []string
	svc := newService(t, func(r *gin.Engine) {
		record := func(c *gin.Context) {
			calls = append(calls, c.Request.Method+" "+c.Request.URL.Path)
			c.Status(http.StatusNoContent)
		}
		r.POST("/api/posts/:id/like", record)
		r.DELETE("/api/posts/:id/like", record)
		r.POST("/api/posts/:id/dislike", record)
		r.DELETE("/api/posts/:id/dislike", record)
	})

	ctx := context.Background()
	for _, res := range []transport.Result[struct{}]{
		svc.Like(ctx, 7), svc.Unlike(ctx, 7), svc.Dislike(ctx, 7), svc.Undislike(ctx, 7),
	} {
		if !res.Success {
			t.Fatalf("reaction failed: %v", res.Err)
		}
	}

	want := []string{
		"POST /api/posts/7/like",
		"DELETE /api/posts/7/like",
		"POST /api/posts/7/dislike",
		"DELETE /api/posts/7/dislike",
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestLike_Conflict(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.POST("/api/posts/:id/like", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"detail": "already liked"})
		})
	})

	res := svc.Like(context.Background(), 7)
	if res.Success {
		t.Fatal("expected 409 failure")
	}
	if !domain.IsConflict(res.Err) {
		t.Errorf("expected conflict, got %v", res.Err)
	}
}

func TestHide(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.PUT("/api/admin/posts/:id/hide", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": 7, "is_hidden": true})
		})
	})

	res := svc.Hide(context.Background(), 7)
	if !res.Success || !res.Data.IsHidden {
		t.Errorf("hide: %+v err=%v", res.Data, res.Err)
	}
}

func TestDelete(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.DELETE("/api/admin/posts/:id", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
	})

	if res := svc.Delete(context.Background(), 7); !res.Success {
		t.Fatalf("delete failed: %v", res.Err)
	}
}
