package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/simp-lee/forumclient/internal/app"
	"github.com/simp-lee/forumclient/internal/controller"
	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/transport"
)

// signalContext returns a context cancelled by Ctrl-C, so an in-flight
// request aborts instead of running out its timeout.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// stdoutNotifier prints mutation outcomes to the terminal.
type stdoutNotifier struct{}

func (stdoutNotifier) Success(msg string) { fmt.Println(msg) }
func (stdoutNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "error: "+msg) }

func cmdLogin(a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	res := a.Auth.Login(ctx, *email, *password)
	if !res.Success {
		return fmt.Errorf("login failed: %s", res.Err.Message)
	}
	fmt.Printf("logged in as %s (%s)\n", res.Data.Username, res.Data.Role)
	return nil
}

func cmdLogout(a *app.App) error {
	if err := a.Auth.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("logged out")
	return nil
}

func cmdReports(a *app.App, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	typ := fs.String("type", "post", "report target type (post or comment)")
	status := fs.String("status", "", "filter by status (pending, reviewed, rejected)")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	filter := domain.Filter{Status: *status, Page: *page, Limit: *limit}
	switch *typ {
	case "post":
		lc := controller.NewListController[domain.PostReport](a.Reports.PostReports, filter, a.Logger())
		if err := lc.Reload(ctx); err != nil {
			return fmt.Errorf("list reports: %s", err.Message)
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tSTATUS\tREASON\tPOST")
		for _, r := range lc.Items() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Status, r.Reason, truncate(r.Post.Title, 40))
		}
		return flushTable(w, lc.Page(), lc.TotalPages(), lc.Total())
	case "comment":
		lc := controller.NewListController[domain.CommentReport](a.Reports.CommentReports, filter, a.Logger())
		if err := lc.Reload(ctx); err != nil {
			return fmt.Errorf("list reports: %s", err.Message)
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tSTATUS\tREASON\tCOMMENT")
		for _, r := range lc.Items() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Status, r.Reason, truncate(r.Comment.Content, 40))
		}
		return flushTable(w, lc.Page(), lc.TotalPages(), lc.Total())
	default:
		return fmt.Errorf("unknown report type %q", *typ)
	}
}

func cmdComments(a *app.App, args []string) error {
	fs := flag.NewFlagSet("comments", flag.ExitOnError)
	status := fs.String("status", "all", "visibility filter (all, visible, hidden)")
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	lc := controller.NewListController[domain.CommentWithUser](a.Comments.AdminList,
		domain.Filter{Status: *status, Search: *search, Page: *page, Limit: *limit}, a.Logger())
	if err := lc.Reload(ctx); err != nil {
		return fmt.Errorf("list comments: %s", err.Message)
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tAUTHOR\tHIDDEN\tCONTENT")
	for _, c := range lc.Items() {
		fmt.Fprintf(w, "%d\t%s\t%v\t%s\n", c.ID, c.User.Username, c.IsHidden, truncate(c.Content, 50))
	}
	return flushTable(w, lc.Page(), lc.TotalPages(), lc.Total())
}

func cmdNotices(a *app.App, args []string) error {
	fs := flag.NewFlagSet("notices", flag.ExitOnError)
	all := fs.Bool("all", false, "include hidden notices (moderators only)")
	fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	fetch := func(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.NoticeWithUser]] {
		return a.Notices.List(ctx, f, *all)
	}
	lc := controller.NewListController[domain.NoticeWithUser](fetch, domain.Filter{Limit: 50}, a.Logger())
	if err := lc.Reload(ctx); err != nil {
		return fmt.Errorf("list notices: %s", err.Message)
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tPINNED\tHIDDEN\tTITLE")
	for _, n := range lc.Items() {
		fmt.Fprintf(w, "%d\t%v\t%v\t%s\n", n.ID, n.IsPinned, n.IsHidden, truncate(n.Title, 60))
	}
	return w.Flush()
}

func cmdNotifications(a *app.App, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	unread := fs.Bool("unread", false, "only unread notifications")
	count := fs.Bool("count", false, "print the unread count and exit")
	markRead := fs.Int64("mark-read", 0, "mark one notification as read by id")
	markAll := fs.Bool("mark-all", false, "mark every notification as read")
	clear := fs.Bool("clear", false, "delete every notification")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	switch {
	case *count:
		res := a.Notifications.Unread(ctx)
		if !res.Success {
			return fmt.Errorf("unread count: %s", res.Err.Message)
		}
		fmt.Printf("%d unread\n", res.Data.Count)
		return nil
	case *markRead != 0:
		res := a.Notifications.MarkRead(ctx, domain.ID(*markRead))
		if !res.Success {
			return fmt.Errorf("mark read: %s", res.Err.Message)
		}
		fmt.Printf("notification %d marked read\n", res.Data.ID)
		return nil
	case *markAll:
		res := a.Notifications.MarkAllRead(ctx)
		if !res.Success {
			return fmt.Errorf("mark all read: %s", res.Err.Message)
		}
		fmt.Printf("%d notifications marked read\n", len(res.Data))
		return nil
	case *clear:
		if res := a.Notifications.DeleteAll(ctx); !res.Success {
			return fmt.Errorf("clear notifications: %s", res.Err.Message)
		}
		fmt.Println("notifications cleared")
		return nil
	}

	fetch := func(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.Notification]] {
		return a.Notifications.List(ctx, f, *unread)
	}
	lc := controller.NewListController[domain.Notification](fetch, domain.Filter{Page: *page, Limit: *limit}, a.Logger())
	if err := lc.Reload(ctx); err != nil {
		return fmt.Errorf("list notifications: %s", err.Message)
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTYPE\tREAD\tCONTENT")
	for _, n := range lc.Items() {
		fmt.Fprintf(w, "%d\t%s\t%v\t%s\n", n.ID, n.Type, n.IsRead, truncate(n.Content, 60))
	}
	return flushTable(w, lc.Page(), lc.TotalPages(), lc.Total())
}

func cmdUsers(a *app.App, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	role := fs.String("role", "", "filter by role (user, moderator, admin)")
	status := fs.String("status", "", "filter by status (active, inactive, suspended)")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	filter := domain.Filter{Search: *search, Status: *status, Page: *page, Limit: *limit}
	if *role != "" {
		filter.Extra = map[string]string{"role": *role}
	}
	lc := controller.NewListController[domain.User](a.Users.List, filter, a.Logger())
	if err := lc.Reload(ctx); err != nil {
		return fmt.Errorf("list users: %s", err.Message)
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tSTATUS\tSUSPENDED UNTIL")
	for _, u := range lc.Items() {
		until := ""
		if u.SuspendedUntil != nil {
			until = u.SuspendedUntil.Format("2006-01-02")
		} else if u.Status == domain.UserSuspended {
			until = "permanent"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.Status, until)
	}
	return flushTable(w, lc.Page(), lc.TotalPages(), lc.Total())
}

func cmdSuspend(a *app.App, args []string) error {
	fs := flag.NewFlagSet("suspend", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	days := fs.Int("days", 0, "suspension length in days (0 means permanent)")
	reason := fs.String("reason", "", "suspension reason (required)")
	lift := fs.Bool("lift", false, "lift an active suspension instead")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("suspend: -id is required")
	}

	ctx, cancel := signalContext()
	defer cancel()

	if *lift {
		res := a.Users.Unsuspend(ctx, *id)
		if !res.Success {
			return fmt.Errorf("unsuspend: %s", res.Err.Message)
		}
		fmt.Printf("user %s is %s again\n", res.Data.Username, res.Data.Status)
		return nil
	}

	var d *int
	if *days > 0 {
		d = days
	}
	res := a.Users.Suspend(ctx, *id, d, *reason)
	if !res.Success {
		return fmt.Errorf("suspend: %s", res.Err.Message)
	}
	if res.Data.SuspendedUntil != nil {
		fmt.Printf("user %s suspended until %s\n", res.Data.Username, res.Data.SuspendedUntil.Format("2006-01-02"))
	} else {
		fmt.Printf("user %s suspended permanently\n", res.Data.Username)
	}
	return nil
}

func cmdModerate(a *app.App, args []string) error {
	fs := flag.NewFlagSet("moderate", flag.ExitOnError)
	resource := fs.String("resource", "", "report, comment, post or notice")
	action := fs.String("action", "", "approve, reject, hide, unhide, delete, pin or unpin")
	id := fs.Int64("id", 0, "item id")
	typ := fs.String("type", "post", "report target type (reports only)")
	fs.Parse(args)

	if *resource == "" || *action == "" || *id == 0 {
		return fmt.Errorf("moderate: -resource, -action and -id are required")
	}

	ctx, cancel := signalContext()
	defer cancel()

	switch *resource {
	case "report":
		return moderateReport(ctx, a, *action, *id, *typ)
	case "comment":
		return moderateComment(ctx, a, *action, *id)
	case "post":
		return moderatePost(ctx, a, *action, *id)
	case "notice":
		return moderateNotice(ctx, a, *action, *id)
	default:
		return fmt.Errorf("unknown resource %q", *resource)
	}
}

// moderateReport resolves approve/reject through a mutation controller so
// the loaded triage page stays consistent with the outcome.
func moderateReport(ctx context.Context, a *app.App, action string, id int64, typ string) error {
	if typ == "comment" {
		lc := controller.NewListController[domain.CommentReport](a.Reports.CommentReports, domain.Filter{}, a.Logger())
		m := controller.NewMutator[domain.CommentReport](lc, stdoutNotifier{}, a.Logger())
		call := a.Reports.ApproveComment
		if action == "reject" {
			call = a.Reports.RejectComment
		} else if action != "approve" {
			return fmt.Errorf("unknown report action %q", action)
		}
		m.Apply(ctx, controller.Action[domain.CommentReport]{
			Name: action + " report", ID: id,
			Update: func(ctx context.Context) transport.Result[domain.CommentReport] { return call(ctx, id) },
		})
		return nil
	}

	lc := controller.NewListController[domain.PostReport](a.Reports.PostReports, domain.Filter{}, a.Logger())
	m := controller.NewMutator[domain.PostReport](lc, stdoutNotifier{}, a.Logger())
	call := a.Reports.ApprovePost
	if action == "reject" {
		call = a.Reports.RejectPost
	} else if action != "approve" {
		return fmt.Errorf("unknown report action %q", action)
	}
	m.Apply(ctx, controller.Action[domain.PostReport]{
		Name: action + " report", ID: id,
		Update: func(ctx context.Context) transport.Result[domain.PostReport] { return call(ctx, id) },
	})
	return nil
}

func moderateComment(ctx context.Context, a *app.App, action string, id int64) error {
	lc := controller.NewListController[domain.CommentWithUser](a.Comments.AdminList, domain.Filter{}, a.Logger())
	m := controller.NewMutator[domain.CommentWithUser](lc, stdoutNotifier{}, a.Logger())

	act := controller.Action[domain.CommentWithUser]{Name: action + " comment", ID: id}
	switch action {
	case "hide":
		act.Update = func(ctx context.Context) transport.Result[domain.CommentWithUser] { return a.Comments.Hide(ctx, id) }
	case "unhide":
		act.Update = func(ctx context.Context) transport.Result[domain.CommentWithUser] { return a.Comments.Unhide(ctx, id) }
	case "delete":
		act.Remove = true
		act.Do = func(ctx context.Context) transport.Result[struct{}] { return a.Comments.Delete(ctx, id) }
	default:
		return fmt.Errorf("unknown comment action %q", action)
	}
	m.Apply(ctx, act)
	return nil
}

func moderatePost(ctx context.Context, a *app.App, action string, id int64) error {
	lc := controller.NewListController[domain.PostDetail](a.Posts.List, domain.Filter{}, a.Logger())
	m := controller.NewMutator[domain.PostDetail](lc, stdoutNotifier{}, a.Logger())

	act := controller.Action[domain.PostDetail]{Name: action + " post", ID: id}
	switch action {
	case "hide":
		act.Update = func(ctx context.Context) transport.Result[domain.PostDetail] { return a.Posts.Hide(ctx, id) }
	case "unhide":
		act.Update = func(ctx context.Context) transport.Result[domain.PostDetail] { return a.Posts.Unhide(ctx, id) }
	case "delete":
		act.Remove = true
		act.Do = func(ctx context.Context) transport.Result[struct{}] { return a.Posts.Delete(ctx, id) }
	default:
		return fmt.Errorf("unknown post action %q", action)
	}
	m.Apply(ctx, act)
	return nil
}

func moderateNotice(ctx context.Context, a *app.App, action string, id int64) error {
	var res transport.Result[domain.Notice]
	switch action {
	case "hide":
		res = a.Notices.Hide(ctx, id)
	case "unhide":
		res = a.Notices.Unhide(ctx, id)
	case "pin":
		res = a.Notices.Pin(ctx, id)
	case "unpin":
		res = a.Notices.Unpin(ctx, id)
	case "delete":
		if r := a.Notices.Delete(ctx, id); !r.Success {
			return fmt.Errorf("delete notice: %s", r.Err.Message)
		}
		fmt.Println("notice deleted")
		return nil
	default:
		return fmt.Errorf("unknown notice action %q", action)
	}
	if !res.Success {
		return fmt.Errorf("%s notice: %s", action, res.Err.Message)
	}
	fmt.Printf("notice %d updated\n", res.Data.ID)
	return nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func flushTable(w *tabwriter.Writer, page, totalPages, total int) error {
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d items)\n", page, totalPages, total)
	return nil
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
