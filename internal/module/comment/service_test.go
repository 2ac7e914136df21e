package comment

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

func TestAdminList_LegacyShape(t *testing.T) {
	var gotStatus, gotSearch string
	svc := newService(t, func(r *gin.Engine) {
		r.GET("/api/admin/comments", func(c *gin.Context) {
			gotStatus = c.Query("status")
			gotSearch = c.Query("search")
			// The admin comment endpoint predates the items/total envelope.
			c.JSON(http.StatusOK, gin.H{
				"comments": []gin.H{
					{"id": 3, "content": "rude", "is_hidden": false, "user": gin.H{"id": 2, "username": "troll"}},
					{"id": 4, "content": "ok", "is_hidden": true, "user": gin.H{"id": 5, "username": "quiet"}},
				},
				"totalItems": 12,
			})
		})
	})

	res := svc.AdminList(context.Background(), domain.Filter{Status: StatusAll, Search: "ru", Page: 1, Limit: 10})
	if !res.Success {
		t.Fatalf("list failed: %v", res.Err)
	}
	if gotStatus != "all" || gotSearch != "ru" {
		t.Errorf("query status=%q search=%q", gotStatus, gotSearch)
	}
	if res.Data.Total != 12 || len(res.Data.Items) != 2 {
		t.Errorf("normalization: total=%d items=%d", res.Data.Total, len(res.Data.Items))
	}
	if res.Data.Items[0].User.Username != "troll" {
		t.Errorf("unexpected first item: %+v", res.Data.Items[0])
	}
	if res.Data.Page != 1 || res.Data.Limit != 10 {
		t.Errorf("page/limit not carried: %+v", res.Data)
	}
}

func TestByPost(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.GET("/api/posts/:id/comments", func(c *gin.Context) {
			if c.Param("id") != "9" {
				c.JSON(http.StatusNotFound, gin.H{"detail": "post not found"})
				return
			}
			c.JSON(http.StatusOK, []gin.H{{"id": 1, "content": "first", "post_id": 9}})
		})
	})

	res := svc.ByPost(context.Background(), 9, domain.Filter{})
	if !res.Success {
		t.Fatalf("list failed: %v", res.Err)
	}
	if len(res.Data.Items) != 1 || res.Data.Items[0].PostID != 9 {
		t.Errorf("unexpected items: %+v", res.Data.Items)
	}
}

func TestCreate_RequiresContent(t *testing.T) {
	svc := newService(t, nil)
	if res := svc.Create(context.Background(), CreateCommentRequest{PostID: 9}); res.Success {
		t.Error("expected validation failure for empty content")
	}
}

func TestHideUnhide(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.PUT("/api/admin/comments/:id/hide", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": 3, "content": "rude", "is_hidden": true})
		})
		r.PUT("/api/admin/comments/:id/unhide", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": 3, "content": "rude", "is_hidden": false})
		})
	})

	if res := svc.Hide(context.Background(), 3); !res.Success || !res.Data.IsHidden {
		t.Errorf("hide: %+v err=%v", res.Data, res.Err)
	}
	if res := svc.Unhide(context.Background(), 3); !res.Success || res.Data.IsHidden {
		t.Errorf("unhide: %+v err=%v", res.Data, res.Err)
	}
}

func TestDelete(t *testing.T) {
	deleted := ""
	svc := newService(t, func(r *gin.Engine) {
		r.DELETE("/api/admin/comments/:id", func(c *gin.Context) {
			deleted = c.Param("id")
			c.Status(http.StatusNoContent)
		})
	})

	if res := svc.Delete(context.Background(), 3); !res.Success {
		t.Fatalf("delete failed: %v", res.Err)
	}
	if deleted != "3" {
		t.Errorf("deleted id = %q", deleted)
	}
}

func TestLike_ConflictIsDetectable(t *testing.T) {
	svc := newService(t, func(r *gin.Engine) {
		r.POST("/api/comments/:id/like", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"detail": "already liked"})
		})
	})

	res := svc.Like(context.Background(), 3)
	if res.Success {
		t.Fatal("expected 409 failure")
	}
	if !domain.IsConflict(res.Err) {
		t.Errorf("expected conflict, got %v", res.Err)
	}
}
