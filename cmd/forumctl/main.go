package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/simp-lee/forumclient/internal/app"
	"github.com/simp-lee/forumclient/internal/config"
)

const usage = `Usage: forumctl [-config path] <command> [flags]

Commands:
  login      authenticate and persist the session
  logout     discard the persisted session
  reports    list reports for triage
  comments   list comments for moderation
  notices    list notices
  notifications  list or manage the current user's notifications
  users      list users
  suspend    suspend or unsuspend a user
  moderate   apply a moderation action to an item
`

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Print("close error: ", err)
		}
	}()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := dispatch(a, cmd, args); err != nil {
		log.Fatal(err)
	}
}

func dispatch(a *app.App, cmd string, args []string) error {
	switch cmd {
	case "login":
		return cmdLogin(a, args)
	case "logout":
		return cmdLogout(a)
	case "reports":
		return cmdReports(a, args)
	case "comments":
		return cmdComments(a, args)
	case "notices":
		return cmdNotices(a, args)
	case "notifications":
		return cmdNotifications(a, args)
	case "users":
		return cmdUsers(a, args)
	case "suspend":
		return cmdSuspend(a, args)
	case "moderate":
		return cmdModerate(a, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
