package main // Operator CLI for account administration

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/findmycamp/api/internal/config"
	"github.com/findmycamp/api/internal/database"
	"github.com/findmycamp/api/internal/repository"
)

const usage = `usage: admin -user <username> <action>

actions:
  grant-admin    give the account admin rights
  revoke-admin   remove the account's admin rights
  deactivate     block the account from logging in
  activate       re-enable a deactivated account
  delete         remove the account, its favorites and sessions
  show           print the account's current state
`

func main() {
	user := flag.String("user", "", "username of the account to operate on")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	action := flag.Arg(0)
	if *user == "" || action == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	accounts := repository.NewAccountRepo(db)

	acct, err := accounts.GetByUsername(ctx, *user)
	if errors.Is(err, sql.ErrNoRows) {
		log.Fatalf("no account named %q", *user)
	} else if err != nil {
		log.Fatalf("lookup %q: %v", *user, err)
	}

	switch action {
	case "grant-admin":
		err = accounts.SetAdmin(ctx, acct.ID, true)
	case "revoke-admin":
		err = accounts.SetAdmin(ctx, acct.ID, false)
	case "deactivate":
		err = accounts.SetActive(ctx, acct.ID, false)
	case "activate":
		err = accounts.SetActive(ctx, acct.ID, true)
	case "delete":
		err = accounts.Delete(ctx, acct.ID)
	case "show":
		fmt.Printf("id=%d username=%s admin=%t active=%t failed_attempts=%d\n",
			acct.ID, acct.Username, acct.IsAdmin, acct.IsActive, acct.FailedAttempts)
		if acct.LockUntil != nil {
			fmt.Printf("locked until %s\n", acct.LockUntil)
		}
		return
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s %q: %v", action, *user, err)
	}
	log.Printf("%s: done (%s)", *user, action)
}
