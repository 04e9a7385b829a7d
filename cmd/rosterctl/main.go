// Command rosterctl is a terminal console for the team roster. It signs in
// against the roster API, then drives the same store and form machinery the
// dashboard uses.
//
// Usage:
//
//	rosterctl list
//	rosterctl add -name NAME -email EMAIL -password PW [-role ROLE]
//	rosterctl edit -id ID [-name NAME] [-email EMAIL] [-role ROLE]
//	rosterctl remove -id ID
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/sethvargo/go-envconfig"

	"github.com/pipeboard/roster-console/internal/console"
	"github.com/pipeboard/roster-console/internal/core/domain"
	"github.com/pipeboard/roster-console/pkg/logger"
)

type cliConfig struct {
	APIURL   string `env:"ROSTER_API_URL,  default=http://localhost:8080"`
	Email    string `env:"ROSTER_EMAIL"`
	Password string `env:"ROSTER_PASSWORD"`
	LogLevel string `env:"LOG_LEVEL,       default=warn"`
}

func main() {
	ctx := context.Background()

	var cfg cliConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: rosterctl <list|add|edit|remove> [flags]")
		os.Exit(2)
	}
	command := os.Args[1]

	token, identity, err := login(ctx, cfg.APIURL, cfg.Email, cfg.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("sign-in failed")
	}

	session := console.Session{
		User: identity,
		Logout: func() {
			fmt.Fprintln(os.Stderr, "session rejected by server, please sign in again")
			os.Exit(1)
		},
	}
	client := console.NewHTTPRosterClient(cfg.APIURL, token, nil)
	store := console.NewStore(session, client, log)

	if err := store.FetchAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("roster fetch failed")
	}

	switch command {
	case "list":
		printRoster(store.Roster(), identity.Role)
	case "add":
		runAdd(ctx, store, identity.Role, os.Args[2:])
	case "edit":
		runEdit(ctx, store, os.Args[2:])
	case "remove":
		runRemove(ctx, store, identity.Role, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}
}

func runAdd(ctx context.Context, store *console.Store, role domain.Role, args []string) {
	if !domain.CanSeeForm(role) {
		fmt.Fprintf(os.Stderr, "role %s may not add team members\n", role)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "initial password")
	roleFlag := fs.String("role", "", "role (defaults to developer)")
	_ = fs.Parse(args)

	form := console.NewForm(func(_ string, p console.Payload) {
		if err := store.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "create failed: %v\n", err)
			os.Exit(1)
		}
	}, nil)

	form.SetName(*name)
	form.SetEmail(*email)
	form.SetPassword(*password)
	if *roleFlag != "" {
		form.SetRole(domain.Role(*roleFlag))
	}
	fmt.Printf("role: %s — %s\n", form.Draft().Role, form.RoleDescription())

	if err := form.Submit(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	printRoster(store.Roster(), role)
}

func runEdit(ctx context.Context, store *console.Store, args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "account id")
	name := fs.String("name", "", "new full name")
	email := fs.String("email", "", "new email address")
	roleFlag := fs.String("role", "", "new role")
	_ = fs.Parse(args)

	target, ok := findUser(store.Roster(), *id)
	if !ok {
		fmt.Fprintf(os.Stderr, "no roster entry with id %q\n", *id)
		os.Exit(1)
	}

	store.SelectForEdit(target)
	if store.EditingTarget() == nil {
		// Non-admin selection is a silent no-op; mirror that here.
		fmt.Fprintln(os.Stderr, "editing requires the admin role")
		os.Exit(1)
	}

	form := console.NewForm(func(targetID string, p console.Payload) {
		if err := store.Update(ctx, targetID, p); err != nil {
			fmt.Fprintf(os.Stderr, "update failed: %v\n", err)
			os.Exit(1)
		}
	}, store.ClearEditing)

	form.SetTarget(store.EditingTarget())
	if *name != "" {
		form.SetName(*name)
	}
	if *email != "" {
		form.SetEmail(*email)
	}
	if *roleFlag != "" {
		form.SetRole(domain.Role(*roleFlag))
		fmt.Printf("role: %s — %s\n", form.Draft().Role, form.RoleDescription())
	}

	if err := form.Submit(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	printRoster(store.Roster(), domain.RoleAdmin)
}

func runRemove(ctx context.Context, store *console.Store, role domain.Role, args []string) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "account id")
	_ = fs.Parse(args)

	before := len(store.Roster())
	if err := store.Delete(ctx, *id); err != nil {
		fmt.Fprintf(os.Stderr, "remove failed: %v\n", err)
		os.Exit(1)
	}
	if len(store.Roster()) == before {
		// The guard swallowed the call.
		fmt.Fprintln(os.Stderr, "removing requires the admin role")
		os.Exit(1)
	}
	printRoster(store.Roster(), role)
}

func findUser(roster []domain.User, id string) (domain.User, bool) {
	for _, u := range roster {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func printRoster(roster []domain.User, role domain.Role) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIONS")
	for _, u := range roster {
		actions := "N/A"
		if domain.Allowed(role, domain.OpEdit) {
			actions = "edit, remove"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, actions)
	}
	_ = w.Flush()
}

func login(ctx context.Context, baseURL, email, password string) (string, *console.Identity, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("login rejected: %s", resp.Status)
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, err
	}

	return out.Token, &console.Identity{
		ID:   out.User.ID,
		Name: out.User.Name,
		Role: domain.Role(out.User.Role),
	}, nil
}
