package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pariney/saree-storefront/internal/aggregator"
	"github.com/pariney/saree-storefront/internal/client"
	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/logger"
)

const usage = `usage: shopper [flags] <command> [args]

commands:
  add <product-id>          add one unit to the cart
  remove <product-id>       drop the cart line
  qty <product-id> <n>      set the line quantity (0 removes)
  wish <product-id>         toggle the product on the wishlist
  show                      print cart, totals and wishlist
  checkout                  place an order for the cart

flags:
`

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadShopper()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fs := flag.NewFlagSet("shopper", flag.ExitOnError)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "storefront API base url")
	fs.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "directory holding the local cart and wishlist")
	fs.StringVar(&cfg.Email, "email", cfg.Email, "account email used at checkout")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "account password used at checkout")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	logg := logger.New(logger.Options{
		ServiceName: "shopper",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Output:      os.Stderr,
		Format:      logger.FormatConsole,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stdout, logg)
	if err != nil {
		logg.Error(ctx, "shopper.init_failed", err)
		os.Exit(1)
	}
	if err := a.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries one shopper invocation: the local aggregator and the API.
type app struct {
	store    *aggregator.Store
	api      *client.Client
	out      io.Writer
	logg     *logger.Logger
	email    string
	password string
	newKey   func() string
}

func newApp(ctx context.Context, cfg *config.ShopperConfig, out io.Writer, logg *logger.Logger) (*app, error) {
	storage, err := aggregator.NewFileStorage(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	api, err := client.New(cfg.APIURL, client.WithToken(cfg.Token))
	if err != nil {
		return nil, err
	}
	return &app{
		store:    aggregator.Open(ctx, storage, logg),
		api:      api,
		out:      out,
		logg:     logg,
		email:    cfg.Email,
		password: cfg.Password,
		newKey:   uuid.NewString,
	}, nil
}
