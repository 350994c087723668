package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/standkas/standkas/internal/app"
	"github.com/standkas/standkas/internal/store"
	"github.com/standkas/standkas/internal/till"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "standkas:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		useMemory  = flag.Bool("mem", false, "use an in-memory store instead of redis")
		seed       = flag.Bool("seed", false, "seed factory data into an empty store")
		exportPath = flag.String("export", "", "write the bulk JSON export to a file")
		importPath = flag.String("import", "", "replace state from a bulk JSON file")
		csvPath    = flag.String("csv", "", "write the audit log CSV to a file")
		adminID    = flag.String("as", "", "account ID to run privileged commands as")
		adminPIN   = flag.String("pin", "", "PIN for the -as account")
	)
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)
	ctx := context.Background()

	var kv store.Store
	if *useMemory {
		kv = store.NewMemory()
	} else {
		redisStore, err := store.NewRedis(ctx, cfg.RedisAddr, cfg.StorePrefix)
		if err != nil {
			return err
		}
		defer redisStore.Close()
		kv = redisStore
	}

	t, err := till.Open(ctx, kv, logger, till.Config{
		MaxAccounts:  cfg.MaxAccounts,
		IdleTimeout:  cfg.AdminIdleTimeout,
		LockMaxFails: cfg.AdminLockFails,
		LockCooldown: cfg.AdminLockWindow,
	})
	if err != nil {
		return err
	}

	if *seed {
		if err := t.SeedDefaults(ctx); err != nil {
			return err
		}
		logger.Info("seed complete", slog.Int("accounts", len(t.Accounts())), slog.Int("products", len(t.Products())))
	}

	needsSession := *exportPath != "" || *importPath != "" || *csvPath != ""
	if needsSession {
		if *adminID == "" || *adminPIN == "" {
			return fmt.Errorf("privileged commands require -as and -pin")
		}
		if _, err := t.LoginStaff(ctx, *adminID, *adminPIN); err != nil {
			return err
		}
		defer func() {
			if err := t.Logout(ctx); err != nil {
				logger.Warn("logout", slog.Any("error", err))
			}
		}()
	}

	if *exportPath != "" {
		if err := writeFile(ctx, *exportPath, t.ExportJSON); err != nil {
			return err
		}
		logger.Info("export written", slog.String("path", *exportPath))
	}
	if *importPath != "" {
		f, err := os.Open(*importPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := t.ImportJSON(ctx, f); err != nil {
			return err
		}
		logger.Info("import applied", slog.String("path", *importPath))
	}
	if *csvPath != "" {
		if err := writeFile(ctx, *csvPath, t.ExportLogCSV); err != nil {
			return err
		}
		logger.Info("csv written", slog.String("path", *csvPath))
	}
	return nil
}

func writeFile(ctx context.Context, path string, write func(context.Context, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
