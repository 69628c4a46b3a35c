package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/urfave/cli/v2"

	"github.com/MikhailRaia/link-shortener/internal/app"
	"github.com/MikhailRaia/link-shortener/internal/config"
	"github.com/MikhailRaia/link-shortener/internal/logger"
	"github.com/MikhailRaia/link-shortener/internal/service"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

func newCLI() *cli.App {
	return &cli.App{
		Name:  "linkctl",
		Usage: "upload, inspect and remove short links",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "link store: s3, file, postgres or memory",
				EnvVars: []string{"STORE_TYPE"},
			},
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "S3 bucket holding the links",
				EnvVars: []string{"BUCKET_NAME"},
				Value:   config.DefaultBucketName,
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "region of the S3 bucket",
				EnvVars: []string{"BUCKET_REGION"},
				Value:   config.DefaultBucketRegion,
			},
			&cli.StringFlag{
				Name:    "prefix",
				Usage:   "prefix prepended to every object key",
				EnvVars: []string{"KEY_PREFIX"},
				Value:   config.DefaultKeyPrefix,
			},
			&cli.StringFlag{
				Name:    "s3-endpoint",
				Usage:   "custom S3 endpoint",
				EnvVars: []string{"S3_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "s3-access-key-id",
				Usage:   "static access key for the S3 endpoint",
				EnvVars: []string{"S3_ACCESS_KEY_ID"},
			},
			&cli.StringFlag{
				Name:    "s3-secret-access-key",
				Usage:   "static secret key for the S3 endpoint",
				EnvVars: []string{"S3_SECRET_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "path to the JSONL file store",
				EnvVars: []string{"FILE_STORAGE_PATH"},
			},
			&cli.StringFlag{
				Name:    "dsn",
				Aliases: []string{"d"},
				Usage:   "PostgreSQL connection string",
				EnvVars: []string{"DATABASE_DSN"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Before: func(c *cli.Context) error {
			logger.InitLogger(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "put",
				Usage:     "store URL under KEY",
				ArgsUsage: "KEY URL",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "skip URL validation"},
				},
				Action: putAction,
			},
			{
				Name:      "get",
				Usage:     "print the raw content stored under KEY",
				ArgsUsage: "KEY",
				Action:    getAction,
			},
			{
				Name:      "delete",
				Usage:     "remove KEY",
				ArgsUsage: "KEY",
				Action:    deleteAction,
			},
			{
				Name:      "resolve",
				Usage:     "print the response an edge invocation for PATH would return",
				ArgsUsage: "PATH",
				Action:    resolveAction,
			},
		},
	}
}

func configFromCLI(c *cli.Context) *config.Config {
	cfg := &config.Config{
		StoreType:         c.String("store"),
		BucketName:        c.String("bucket"),
		BucketRegion:      c.String("region"),
		KeyPrefix:         c.String("prefix"),
		S3Endpoint:        c.String("s3-endpoint"),
		S3AccessKeyID:     c.String("s3-access-key-id"),
		S3SecretAccessKey: c.String("s3-secret-access-key"),
		FileStoragePath:   c.String("file"),
		DatabaseDSN:       c.String("dsn"),
		LambdaMode:        config.LambdaModeEdge,
	}

	if cfg.StoreType == "" {
		cfg.StoreType = config.StoreMemory
		if cfg.BucketName != "" {
			cfg.StoreType = config.StoreS3
		}
	}

	return cfg
}

func withStore(c *cli.Context, fn func(storage.Store) error) error {
	cfg := configFromCLI(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, closeFn, err := app.NewStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(store)
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", c.Command.Name, n, c.NArg())
	}
	return nil
}

// validateURL accepts absolute http(s) URLs only.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}

func putAction(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	key, target := c.Args().Get(0), c.Args().Get(1)

	if key == "" {
		return service.ErrEmptyKey
	}
	if !c.Bool("force") {
		if err := validateURL(target); err != nil {
			return err
		}
	}

	return withStore(c, func(store storage.Store) error {
		if err := store.Put(c.Context, key, target); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s -> %s\n", key, target)
		return nil
	})
}

func getAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}

	return withStore(c, func(store storage.Store) error {
		content, err := store.Get(c.Context, c.Args().First())
		if err != nil {
			if errors.Is(err, storage.ErrLinkNotFound) {
				return cli.Exit(err.Error(), 2)
			}
			return err
		}
		fmt.Fprintln(c.App.Writer, content)
		return nil
	})
}

func deleteAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}

	return withStore(c, func(store storage.Store) error {
		return store.Delete(c.Context, c.Args().First())
	})
}

func resolveAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}

	return withStore(c, func(store storage.Store) error {
		resp := service.NewResolver(store).Resolve(c.Context, c.Args().First())

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, string(out))
		return nil
	})
}
