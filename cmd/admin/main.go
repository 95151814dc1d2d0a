package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fintrack/internal/demo"
	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/domain/user"
	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/telemetry"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "Management commands for the fintrack API",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			slog.SetDefault(telemetry.NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"), "text"))
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)

	root.AddCommand(
		newMigrateCommand(),
		newCreateUserCommand(),
		newSeedDemoCommand(),
	)
	return root
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *postgres.Migrator) error {
				if err := mg.Up(); err != nil {
					return err
				}
				return printVersion(cmd.OutOrStdout(), mg)
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return withMigrator(func(mg *postgres.Migrator) error {
				if err := mg.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd.OutOrStdout(), mg)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *postgres.Migrator) error {
				return printVersion(cmd.OutOrStdout(), mg)
			})
		},
	})

	return cmd
}

func withMigrator(fn func(*postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mg, err := postgres.NewMigrator(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer mg.Close()

	return fn(mg)
}

func printVersion(w io.Writer, mg *postgres.Migrator) error {
	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(w, "Schema version: %d (dirty)\n", v)
	} else {
		fmt.Fprintf(w, "Schema version: %d\n", v)
	}
	return nil
}

type createUserOptions struct {
	email     string
	password  string
	firstName string
	lastName  string
	currency  string
}

func newCreateUserCommand() *cobra.Command {
	var opts createUserOptions

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account with the default categories",
		Example: `  admin create-user --email=ana@example.com --first-name=Ana --last-name=Silva
  admin create-user --email=ana@example.com --first-name=Ana --last-name=Silva --currency=BRL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				pw, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				opts.password = pw
			}
			return runCreateUser(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password (optional, will prompt if omitted)")
	cmd.Flags().StringVar(&opts.firstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&opts.lastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&opts.currency, "currency", user.DefaultCurrency, "ISO currency code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func runCreateUser(ctx context.Context, out io.Writer, opts createUserOptions) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	result, err := env.users.Register(ctx, user.RegisterParams{
		Email:     opts.email,
		Password:  opts.password,
		FirstName: opts.firstName,
		LastName:  opts.lastName,
		Currency:  opts.currency,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "User %s created with ID %s\n", result.User.Email, result.User.ID)
	return nil
}

type seedDemoOptions struct {
	email    string
	months   int
	perMonth int
	seed     uint64
}

func newSeedDemoCommand() *cobra.Command {
	defaults := demo.DefaultConfig()
	opts := seedDemoOptions{months: defaults.Months, perMonth: defaults.PerMonth, seed: defaults.Seed}

	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Fill an account with labelled placeholder transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedDemo(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Email of the account to fill (required)")
	cmd.Flags().IntVar(&opts.months, "months", opts.months, "Trailing months to cover")
	cmd.Flags().IntVar(&opts.perMonth, "per-month", opts.perMonth, "Expense rows per month")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "Random seed")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runSeedDemo(ctx context.Context, out io.Writer, opts seedDemoOptions) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	u, err := env.userRepo.GetByEmail(ctx, user.NormalizeEmail(opts.email))
	if err != nil {
		return fmt.Errorf("find user %s: %w", opts.email, err)
	}

	start := time.Now()
	n, err := demo.NewSeeder(env.categories, env.transactions).Seed(ctx, u.ID, demo.Config{
		Months:   opts.months,
		PerMonth: opts.perMonth,
		Seed:     opts.seed,
		Now:      env.now(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %d demo transactions for %s in %v\n", n, u.Email, time.Since(start).Round(time.Millisecond))
	return nil
}

// adminEnv is the subset of the API's wiring the data commands need.
type adminEnv struct {
	db           *postgres.DB
	userRepo     *postgres.UserRepository
	users        *user.Service
	categories   *category.Service
	transactions *transaction.Service
	now          func() time.Time
}

func openEnv() (*adminEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString(), postgres.PoolConfig{MaxOpenConns: 4, MaxIdleConns: 2})
	if err != nil {
		return nil, err
	}

	loc := cfg.Report.Location
	now := func() time.Time { return time.Now().In(loc) }

	userRepo := postgres.NewUserRepository(db)
	categories := category.NewService(postgres.NewCategoryRepository(db))
	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		Issuer:        cfg.JWT.Issuer,
	})

	return &adminEnv{
		db:           db,
		userRepo:     userRepo,
		users:        user.NewService(userRepo, categories, tokens, auth.NewPasswordHasher(cfg.Auth.BcryptCost)),
		categories:   categories,
		transactions: transaction.NewService(postgres.NewTransactionRepository(db), categories, now),
		now:          now,
	}, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Fallback for pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
