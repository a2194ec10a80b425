// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/atotto/clipboard"

	"github.com/rlozanop/credvault/internal/adapter"
	"github.com/rlozanop/credvault/internal/config"
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/internal/store"
	"github.com/rlozanop/credvault/internal/tui"
	"github.com/rlozanop/credvault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: vaultctl <command> [flags]

commands:
  register  create an account and start a session
  login     start a session
  logout    discard the local session
  list      list stored credentials (cached copy when offline)
  create    store a new credential
  get       show one credential's metadata
  update    change fields of a stored credential
  delete    remove a stored credential
  reveal    disclose one stored password (audited server-side)
  pick      choose a credential interactively and copy its password
`

// app bundles everything a subcommand needs. The plaintext password of a
// reveal never touches the logger or the local cache.
type app struct {
	server adapter.ServerAdapter
	cache  store.LocalCacheRepository
	log    *logger.Logger
}

func main() {
	printBuildInfo()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log := logger.NewClientLogger("credvault-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	localStorage, err := store.NewClientStorages(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	a := &app{
		server: adapter.NewHTTPServerAdapter(cfg),
		cache:  localStorage.CacheRepository,
		log:    log,
	}

	ctx := context.Background()
	if err = a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Err(err).Str("command", os.Args[1]).Msg("command failed")
		fmt.Fprintf(os.Stderr, "vaultctl: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.cache.ClearSession(ctx)
	case "list":
		return a.list(ctx, args)
	case "create":
		return a.create(ctx, args)
	case "get":
		return a.get(ctx, args)
	case "update":
		return a.update(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "reveal":
		return a.reveal(ctx, args)
	case "pick":
		return a.pick(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	token, err := a.server.Register(ctx, models.User{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	if err = a.saveSession(ctx, token); err != nil {
		return err
	}
	fmt.Println("registered and logged in")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	token, err := a.server.Login(ctx, models.User{Email: *email, Password: *password})
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			return errors.New("invalid email/password")
		}
		return err
	}

	if err = a.saveSession(ctx, token); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func (a *app) saveSession(ctx context.Context, token models.Token) error {
	session := models.ClientSession{
		UserID:  token.UserID,
		Token:   token.SignedString,
		SavedAt: time.Now().UTC(),
	}
	if err := a.cache.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

// restoreSession loads the persisted token into the adapter. Authenticated
// subcommands call this before talking to the server.
func (a *app) restoreSession(ctx context.Context) error {
	session, err := a.cache.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return errors.New("not logged in; run `vaultctl login` first")
	}
	if err != nil {
		return fmt.Errorf("error loading session: %w", err)
	}

	a.server.SetToken(session.Token)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	service := fs.String("service", "", "filter by service name substring")
	fs.Parse(args)

	credentials, err := a.listWithCacheFallback(ctx, models.ListFilter{ServiceName: *service})
	if err != nil {
		return err
	}

	printCredentials(credentials)
	return nil
}

// listWithCacheFallback fetches the listing from the server and refreshes the
// local cache. When the server is unreachable it serves the cached copy so the
// listing keeps working offline. Session errors are not retried from cache:
// an expired token means the user has to log in again.
func (a *app) listWithCacheFallback(ctx context.Context, filter models.ListFilter) ([]models.CredentialResponse, error) {
	if err := a.restoreSession(ctx); err != nil {
		return nil, err
	}

	credentials, err := a.server.ListCredentials(ctx, filter)
	if err == nil {
		if filter.ServiceName == "" {
			if cacheErr := a.cache.ReplaceCredentials(ctx, credentials); cacheErr != nil {
				a.log.Err(cacheErr).Msg("error refreshing local cache")
			}
		}
		return credentials, nil
	}
	if errors.Is(err, adapter.ErrUnauthorized) {
		return nil, errors.New("session expired; run `vaultctl login` again")
	}

	a.log.Err(err).Msg("server unreachable, serving cached listing")
	cached, cacheErr := a.cache.ListCredentials(ctx, filter)
	if cacheErr != nil {
		return nil, err
	}
	fmt.Fprintln(os.Stderr, "vaultctl: server unreachable, showing cached listing")
	return cached, nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	service := fs.String("service", "", "service name")
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	url := fs.String("url", "", "service URL")
	notes := fs.String("notes", "", "free-form notes")
	fs.Parse(args)

	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	created, err := a.server.CreateCredential(ctx, models.CredentialCreate{
		ServiceName:     *service,
		AccountUsername: *username,
		Password:        *password,
		URL:             *url,
		Notes:           *notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("stored credential %d (%s)\n", created.CredentialID, created.ServiceName)
	return nil
}

func (a *app) get(ctx context.Context, args []string) error {
	credentialID, err := parseCredentialID(args)
	if err != nil {
		return err
	}
	if err = a.restoreSession(ctx); err != nil {
		return err
	}

	credential, err := a.server.GetCredential(ctx, credentialID)
	if err != nil {
		return err
	}

	printCredentials([]models.CredentialResponse{credential})
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "credential id")
	service := fs.String("service", "", "new service name")
	username := fs.String("username", "", "new account username")
	password := fs.String("password", "", "new account password")
	url := fs.String("url", "", "new service URL")
	notes := fs.String("notes", "", "new notes")
	fs.Parse(args)

	if *id == 0 {
		return errors.New("missing -id")
	}

	// only flags the user actually passed become part of the update
	update := models.CredentialUpdate{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "service":
			update.ServiceName = service
		case "username":
			update.AccountUsername = username
		case "password":
			update.Password = password
		case "url":
			update.URL = url
		case "notes":
			update.Notes = notes
		}
	})

	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	updated, err := a.server.UpdateCredential(ctx, *id, update)
	if err != nil {
		return err
	}

	fmt.Printf("updated credential %d (%s)\n", updated.CredentialID, updated.ServiceName)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	credentialID, err := parseCredentialID(args)
	if err != nil {
		return err
	}
	if err = a.restoreSession(ctx); err != nil {
		return err
	}

	if err = a.server.DeleteCredential(ctx, credentialID); err != nil {
		return err
	}
	fmt.Printf("deleted credential %d\n", credentialID)
	return nil
}

func (a *app) reveal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reveal", flag.ExitOnError)
	id := fs.Int64("id", 0, "credential id")
	copyFlag := fs.Bool("copy", false, "copy the password to the clipboard instead of printing it")
	fs.Parse(args)

	if *id == 0 {
		return errors.New("missing -id")
	}
	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	password, err := a.server.RevealCredential(ctx, *id)
	if err != nil {
		return err
	}

	if *copyFlag {
		if err = clipboard.WriteAll(password); err != nil {
			return fmt.Errorf("error copying to clipboard: %w", err)
		}
		fmt.Println("password copied to clipboard")
		return nil
	}

	fmt.Println(password)
	return nil
}

// pick runs the interactive picker over the current listing and copies the
// chosen credential's password to the clipboard.
func (a *app) pick(ctx context.Context) error {
	credentials, err := a.listWithCacheFallback(ctx, models.ListFilter{})
	if err != nil {
		return err
	}
	if len(credentials) == 0 {
		return errors.New("no credentials stored yet")
	}

	chosen, err := tui.Pick(credentials)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	password, err := a.server.RevealCredential(ctx, chosen.CredentialID)
	if err != nil {
		return err
	}
	if err = clipboard.WriteAll(password); err != nil {
		return fmt.Errorf("error copying to clipboard: %w", err)
	}

	fmt.Printf("password for %s copied to clipboard\n", chosen.ServiceName)
	return nil
}

func parseCredentialID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errors.New("missing credential id")
	}
	credentialID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid credential id %q", args[0])
	}
	return credentialID, nil
}

func printCredentials(credentials []models.CredentialResponse) {
	if len(credentials) == 0 {
		fmt.Println("no credentials")
		return
	}
	for _, credential := range credentials {
		fmt.Printf("%-6d %-24s %-24s %s\n",
			credential.CredentialID, credential.ServiceName, credential.AccountUsername, credential.URL)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
