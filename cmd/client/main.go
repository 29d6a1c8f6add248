package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"treemap-backend/pkg/apiclient"
	"treemap-backend/pkg/session"

	"golang.org/x/term"
)

const usage = `usage: treemap-client <command> [flags]

commands:
  register   create an account and log in
  login      authenticate and store the session
  logout     drop the stored session
  whoami     show the authenticated user
  trees      list tree records
  plant      record a tree planting
  theme      show or toggle the display preference

environment:
  TREEMAP_API_URL   service base URL (default http://localhost:8080)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("TREEMAP_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("open session: %v", err)
	}
	client := apiclient.NewClient(baseURL)
	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		err = register(ctx, client, store)
	case "login":
		err = login(ctx, client, store)
	case "logout":
		err = logout(ctx, client, store)
	case "whoami":
		err = whoami(ctx, client, store)
	case "trees":
		err = trees(ctx, client, os.Args[2:])
	case "plant":
		err = plant(ctx, client, store, os.Args[2:])
	case "theme":
		err = theme(store, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func openStore() (*session.Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	storage, err := session.NewFileStorage(filepath.Join(configDir, "treemap", "session.json"))
	if err != nil {
		return nil, err
	}
	return session.NewStore(storage), nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Println(label)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptPassword(label string) (string, error) {
	fmt.Println(label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func register(ctx context.Context, client *apiclient.Client, store *session.Store) error {
	reader := bufio.NewReader(os.Stdin)

	username, err := prompt(reader, "Enter username")
	if err != nil {
		return err
	}
	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}
	password, err := promptPassword("Enter password")
	if err != nil {
		return err
	}

	resp, err := client.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	if err := store.SaveLogin(resp.TokenSet(), resp.User); err != nil {
		return err
	}

	fmt.Printf("Registered and logged in as %s\n", username)
	return nil
}

func login(ctx context.Context, client *apiclient.Client, store *session.Store) error {
	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}
	password, err := promptPassword("Enter password")
	if err != nil {
		return err
	}

	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := store.SaveLogin(resp.TokenSet(), resp.User); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", email)
	return nil
}

func logout(ctx context.Context, client *apiclient.Client, store *session.Store) error {
	_ = client.Logout(ctx)
	store.Clear()
	fmt.Println("Logged out")
	return nil
}

func whoami(ctx context.Context, client *apiclient.Client, store *session.Store) error {
	if !store.CheckAndRefresh(ctx, client) {
		return fmt.Errorf("not logged in")
	}

	user, err := client.Me(ctx, store.AccessToken())
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	return nil
}

func trees(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("trees", flag.ExitOnError)
	limit := fs.Int("limit", 25, "records per page")
	offset := fs.Int("offset", 0, "records to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := client.Trees(ctx, *limit, *offset)
	if err != nil {
		return err
	}

	for _, tree := range page.List {
		fmt.Printf("%v\t%s\t%s\t%s\n", tree.ID, tree.Name, tree.Species, tree.HealthStatus)
	}
	fmt.Printf("%d of %d trees\n", len(page.List), page.PageInfo.TotalRows)
	return nil
}

func plant(ctx context.Context, client *apiclient.Client, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("plant", flag.ExitOnError)
	message := fs.String("message", "", "dedication message")
	amount := fs.Int("amount", 1, "number of trees")
	location := fs.String("location", "", "location record id")
	treeInfo := fs.String("tree", "", "tree info record id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !store.CheckAndRefresh(ctx, client) {
		return fmt.Errorf("not logged in")
	}

	req := &apiclient.PlantRequest{
		Message: *message,
		Amount:  *amount,
	}
	if user := store.User(); user != nil {
		req.UserID = user.ID
	}
	if *location != "" {
		req.LocationID = *location
	}
	if *treeInfo != "" {
		req.TreeInfoID = *treeInfo
	}

	if err := client.Plant(ctx, store.AccessToken(), req); err != nil {
		return err
	}

	fmt.Printf("Planted %d tree(s)\n", *amount)
	return nil
}

func theme(store *session.Store, args []string) error {
	if len(args) > 0 && args[0] == "toggle" {
		mode, err := store.ToggleTheme()
		if err != nil {
			return err
		}
		fmt.Println(mode)
		return nil
	}

	fmt.Println(store.ThemeMode())
	return nil
}
