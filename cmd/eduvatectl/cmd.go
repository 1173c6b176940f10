package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/eduvate/eduvate-api/internal/cache"
	"github.com/eduvate/eduvate-api/internal/college"
	"github.com/eduvate/eduvate-api/internal/config"
	"github.com/eduvate/eduvate-api/internal/db"
	"github.com/eduvate/eduvate-api/internal/seed"
	"github.com/eduvate/eduvate-api/internal/user"
)

// readPasswordFunc reads a password from the terminal without echo.
var readPasswordFunc = term.ReadPassword

// openSharedCache connects to the cache running gateways read from. It
// returns nil when no shared cache is configured.
var openSharedCache = func(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB, "eduvate:")
}

const usage = `usage: eduvatectl <command> [flags]

commands:
  seed      replace catalogue data with the bundled (or -file) data set
  adduser   create or update an account; prompts for the password
`

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(strings.TrimSpace(usage))
	}
	switch args[0] {
	case "seed":
		return runSeed(ctx, args[1:], out)
	case "adduser":
		return runAddUser(ctx, args[1:], out)
	case "-h", "--help", "help":
		_, err := io.WriteString(out, usage)
		return err
	default:
		return errors.Errorf("unknown command %q", args[0])
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, db.Driver, error) {
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil {
		return nil, "", err
	}
	return dbh, driver, nil
}

func runSeed(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	file := fs.String("file", "", "YAML data set (default: bundled demo data)")
	randSeed := fs.Int64("rand-seed", seed.DefaultRandSeed, "seed for generated placement figures")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := loadData(*file)
	if err != nil {
		return err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	dbh, driver, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbh.Close()

	n, err := seed.Apply(ctx, dbh, data, *randSeed)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d colleges, %d cutoffs, %d exams, %d scholarships, %d hostels, %d placements\n",
		n.Colleges, n.Cutoffs, n.Exams, n.Scholarships, n.Hostels, n.Placements)

	// Reseeding replaces college ids, so cached prediction candidates are stale.
	c, err := openSharedCache(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "seeded, but could not reach the prediction cache")
	}
	if c == nil {
		fmt.Fprintln(out, "no REDIS_ADDR set: running gateways keep in-process predictions until CACHE_TTL expires; restart them to apply now")
		return nil
	}
	defer c.Close()
	if err := college.NewService(college.NewSQLStore(dbh, driver), c, 0).InvalidateAll(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "flushed cached predictions (%s)\n", c.Name())
	return nil
}

func loadData(path string) (seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return seed.Data{}, err
	}
	defer f.Close()
	d, err := seed.Parse(f)
	if err != nil {
		return seed.Data{}, errors.Wrap(err, path)
	}
	return d, nil
}

func runAddUser(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(out)
	email := fs.String("email", "", "account email (required)")
	name := fs.String("name", "", "display name")
	admin := fs.Bool("admin", false, "grant the admin role")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" {
		return errors.New("adduser: -email is required")
	}

	password, err := promptPassword(out)
	if err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	dbh, driver, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbh.Close()

	role := user.RoleStudent
	if *admin {
		role = user.RoleAdmin
	}
	var namePtr *string
	if n := strings.TrimSpace(*name); n != "" {
		namePtr = &n
	}
	u, created, err := user.NewSQLStore(dbh, driver).Upsert(ctx, *email, password, namePtr, role)
	if err != nil {
		return err
	}
	verb := "updated"
	if created {
		verb = "created"
	}
	fmt.Fprintf(out, "%s user %d <%s> role=%s\n", verb, u.ID, u.Email, u.Role)
	return nil
}

func promptPassword(out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	fmt.Fprint(out, "Password: ")
	first, err := readPasswordFunc(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	fmt.Fprint(out, "Confirm password: ")
	second, err := readPasswordFunc(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	if !bytes.Equal(first, second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	return string(first), nil
}
