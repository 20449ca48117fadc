package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/storely/store-rating-service/internal/client"
	"github.com/storely/store-rating-service/internal/services"
)

const usage = `usage: storectl [flags] <command> [args]

commands:
  register              create an account (interactive)
  login <email>         log in and store the session
  logout                drop the stored session
  whoami                show the logged-in account
  stores [search]       list stores
  store <id>            show one store
  rate <store> <value>  rate a store 1-5
  my-ratings            list your own ratings
  dashboard             role-specific overview

flags:
  -server URL     service base URL (or STORECTL_SERVER)
  -timeout N      request timeout in seconds
`

func main() {
	fs := flag.NewFlagSet("storectl", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	cfg, err := client.LoadConfig(fs, os.Args[1:])
	if err != nil {
		fatal(err)
	}

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	sessions, err := client.NewSessionStore(cfg.SessionPath)
	if err != nil {
		fatal(err)
	}

	api := client.NewAPI(cfg.ServerAddr, cfg.Timeout)
	session, err := sessions.Load()
	if err == nil {
		api.SetToken(session.Token)
	} else if !errors.Is(err, client.ErrNoSession) {
		fatal(err)
	}

	ctx := context.Background()
	if err := run(ctx, api, sessions, session, args); err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			// The token is dead; drop it so the next command starts clean.
			_ = sessions.Clear()
		}
		fatal(err)
	}
}

func run(ctx context.Context, api *client.API, sessions *client.SessionStore, session *client.Session, args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "register":
		return register(ctx, api, sessions)
	case "login":
		if len(rest) != 1 {
			return errors.New("usage: storectl login <email>")
		}
		return login(ctx, api, sessions, rest[0])
	case "logout":
		if err := sessions.Clear(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	case "whoami":
		if session == nil {
			return client.ErrNoSession
		}
		fmt.Printf("%s <%s> (%s)\n", session.Name, session.Email, session.Role)
		return nil
	case "stores":
		search := ""
		if len(rest) > 0 {
			search = rest[0]
		}
		resp, err := api.ListStores(ctx, 1, search)
		if err != nil {
			return err
		}
		client.RenderStoreList(os.Stdout, resp)
		return nil
	case "store":
		if len(rest) != 1 {
			return errors.New("usage: storectl store <id>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		store, err := api.GetStore(ctx, id)
		if err != nil {
			return err
		}
		client.RenderStoreDetail(os.Stdout, store)
		return nil
	case "rate":
		if len(rest) != 2 {
			return errors.New("usage: storectl rate <store> <value>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		value, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid rating %q", rest[1])
		}
		rating, err := api.SubmitRating(ctx, id, value)
		if err != nil {
			return err
		}
		fmt.Printf("rated %s: %d\n", rating.Store.Name, rating.Rating)
		return nil
	case "my-ratings":
		ratings, err := api.MyRatings(ctx)
		if err != nil {
			return err
		}
		client.RenderMyRatings(os.Stdout, ratings)
		return nil
	case "dashboard":
		if session == nil {
			return client.ErrNoSession
		}
		return dashboard(ctx, api, session)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func register(ctx context.Context, api *client.API, sessions *client.SessionStore) error {
	var req services.RegisterRequest

	fmt.Print("name: ")
	fmt.Scanln(&req.Name)
	fmt.Print("email: ")
	fmt.Scanln(&req.Email)

	password, err := readPassword("password: ")
	if err != nil {
		return err
	}
	req.Password = password

	resp, err := api.Register(ctx, &req)
	if err != nil {
		return err
	}
	return saveSession(sessions, resp)
}

func login(ctx context.Context, api *client.API, sessions *client.SessionStore, email string) error {
	password, err := readPassword("password: ")
	if err != nil {
		return err
	}

	resp, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := saveSession(sessions, resp); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", resp.User.Email, resp.User.Role)
	return nil
}

func dashboard(ctx context.Context, api *client.API, session *client.Session) error {
	switch client.ResolveDashboardView(session.Role) {
	case client.ViewOwnerStores:
		dash, err := api.OwnerDashboard(ctx)
		if err != nil {
			return err
		}
		client.RenderOwnerDashboard(os.Stdout, dash)
	case client.ViewPlatformStats:
		stats, err := api.AdminDashboard(ctx)
		if err != nil {
			return err
		}
		client.RenderPlatformStats(os.Stdout, stats)
	default:
		ratings, err := api.MyRatings(ctx)
		if err != nil {
			return err
		}
		client.RenderMyRatings(os.Stdout, ratings)
	}
	return nil
}

func saveSession(sessions *client.SessionStore, resp *services.AuthResponse) error {
	return sessions.Save(&client.Session{
		Token: resp.Token,
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: resp.User.Email,
		Role:  string(resp.User.Role),
	})
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(data), nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "storectl:", err)
	os.Exit(1)
}
