// storefront is the shop client. State (session and cart) survives between
// invocations through the persistence bridge, so each run picks up exactly
// where the last one left off.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ellurunanda/Shopping-Cart/internal/app"
	"github.com/ellurunanda/Shopping-Cart/internal/config"
	"github.com/ellurunanda/Shopping-Cart/internal/domain"
	"github.com/ellurunanda/Shopping-Cart/internal/gateway"
	"github.com/ellurunanda/Shopping-Cart/internal/persist"
)

const usage = `Usage: storefront <command> [args]

Commands:
  products [-limit N] [-skip N]   list catalog page
  product <id>                    show product details
  search <query>                  search products
  categories                      list categories
  category <slug>                 list products in a category
  cart                            show the cart
  cart add <product-id>           add one unit to the cart
  cart remove <product-id>        remove a line
  cart set <product-id> <qty>     set a line's quantity
  cart clear                      empty the cart
  login <username> <password>     sign in
  register <username> <password> [name] [email]
  logout                          sign out (cart is kept)
  whoami                          show the current session
  add-product [flags]             create a product (admin only)
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("storefront: %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	if err := run(ctx, cfg, store, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}

func buildStore(cfg *config.Config) (*app.Store, func(), error) {
	var storage persist.Storage
	cleanup := func() {}

	switch cfg.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		storage = persist.NewRedisStore(client)
		cleanup = func() { client.Close() }
	case "file":
		storage = persist.NewFileStore(cfg.StateDir)
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	gw := gateway.New(gateway.Options{
		PrimaryBaseURL:  cfg.PrimaryBaseURL,
		FallbackBaseURL: cfg.FallbackBaseURL,
		Timeout:         cfg.RequestTimeout,
	})
	return app.New(context.Background(), gw, storage), cleanup, nil
}

func run(ctx context.Context, cfg *config.Config, store *app.Store, command string, args []string) error {
	switch command {
	case "products":
		fs := flag.NewFlagSet("products", flag.ExitOnError)
		limit := fs.Int("limit", cfg.PageSize, "page size")
		skip := fs.Int("skip", 0, "offset into the catalog")
		fs.Parse(args)
		if err := store.Catalog.FetchProducts(ctx, *limit, *skip); err != nil {
			return err
		}
		printProducts(store.Catalog.Products(), store.Catalog.Total())
		return nil

	case "product":
		id, err := argID(args)
		if err != nil {
			return err
		}
		if err := store.Catalog.FetchProduct(ctx, id); err != nil {
			return err
		}
		printProduct(store.Catalog.CurrentProduct())
		return nil

	case "search":
		if len(args) < 1 {
			return fmt.Errorf("search needs a query")
		}
		store.Catalog.SetSearchQuery(args[0])
		if err := store.Catalog.Search(ctx, args[0]); err != nil {
			return err
		}
		printProducts(store.Catalog.Products(), store.Catalog.Total())
		return nil

	case "categories":
		if err := store.Catalog.FetchCategories(ctx); err != nil {
			return err
		}
		for _, c := range store.Catalog.Categories() {
			fmt.Printf("%-24s %s\n", c.Slug, c.Name)
		}
		return nil

	case "category":
		if len(args) < 1 {
			return fmt.Errorf("category needs a slug")
		}
		store.Catalog.SetSelectedCategory(args[0])
		if err := store.Catalog.FetchByCategory(ctx, args[0]); err != nil {
			return err
		}
		printProducts(store.Catalog.Products(), store.Catalog.Total())
		return nil

	case "cart":
		return runCart(ctx, store, args)

	case "login":
		if len(args) < 2 {
			return fmt.Errorf("login needs a username and password")
		}
		creds := domain.Credentials{Username: args[0], Password: args[1]}
		if err := store.Session.Login(ctx, creds); err != nil {
			return err
		}
		user := store.Session.User()
		fmt.Printf("signed in as %s (%s)\n", user.DisplayName(), user.Role)
		return nil

	case "register":
		if len(args) < 2 {
			return fmt.Errorf("register needs a username and password")
		}
		reg := domain.Registration{Username: args[0], Password: args[1]}
		if len(args) > 2 {
			reg.Name = args[2]
		}
		if len(args) > 3 {
			reg.Email = args[3]
		}
		if err := store.Session.Register(ctx, reg); err != nil {
			return err
		}
		fmt.Printf("registered and signed in as %s\n", store.Session.User().DisplayName())
		return nil

	case "logout":
		store.Session.Logout()
		fmt.Println("signed out")
		return nil

	case "whoami":
		user := store.Session.User()
		if user == nil {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s (%s), role %s\n", user.DisplayName(), user.Username, user.Role)
		return nil

	case "add-product":
		return runAddProduct(ctx, store, args)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runCart(ctx context.Context, store *app.Store, args []string) error {
	if len(args) == 0 {
		printCart(store.Cart.Snapshot())
		return nil
	}

	switch args[0] {
	case "add":
		id, err := argID(args[1:])
		if err != nil {
			return err
		}
		// The ledger stores a product snapshot, so resolve it first.
		if err := store.Catalog.FetchProduct(ctx, id); err != nil {
			return err
		}
		store.Cart.Add(*store.Catalog.CurrentProduct())
		printCart(store.Cart.Snapshot())
		return nil

	case "remove":
		id, err := argID(args[1:])
		if err != nil {
			return err
		}
		store.Cart.Remove(id)
		printCart(store.Cart.Snapshot())
		return nil

	case "set":
		if len(args) < 3 {
			return fmt.Errorf("cart set needs a product id and a quantity")
		}
		id, err := argID(args[1:])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity must be a number")
		}
		store.Cart.SetQuantity(id, qty)
		printCart(store.Cart.Snapshot())
		return nil

	case "clear":
		store.Cart.Clear()
		fmt.Println("cart cleared")
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func runAddProduct(ctx context.Context, store *app.Store, args []string) error {
	if !store.Session.IsAdmin() {
		return fmt.Errorf("add-product requires an admin session")
	}

	fs := flag.NewFlagSet("add-product", flag.ExitOnError)
	title := fs.String("title", "", "product title")
	description := fs.String("description", "", "product description")
	brand := fs.String("brand", "", "brand name")
	category := fs.String("category", "", "category slug")
	price := fs.Float64("price", 0, "list price")
	discount := fs.Float64("discount", 0, "discount percentage")
	stock := fs.Int("stock", 0, "units in stock")
	thumbnail := fs.String("thumbnail", "", "thumbnail URL")
	fs.Parse(args)

	created, err := store.Catalog.AddProduct(ctx, domain.Product{
		Title:              *title,
		Description:        *description,
		Brand:              *brand,
		Category:           *category,
		Price:              *price,
		DiscountPercentage: *discount,
		Stock:              *stock,
		Thumbnail:          *thumbnail,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created product %d: %s\n", created.ID, created.Title)
	return nil
}

func argID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("a product id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("product id must be a number")
	}
	return id, nil
}

func printProducts(products []domain.Product, total int) {
	for _, p := range products {
		price := domain.FormatUSD(decimal.NewFromFloat(p.Price))
		fmt.Printf("%4d  %-40s %10s  %s\n", p.ID, p.Title, price, domain.StockStatus(p.Stock))
	}
	fmt.Printf("%d of %d products\n", len(products), total)
}

func printProduct(p *domain.Product) {
	if p == nil {
		fmt.Println("no product loaded")
		return
	}
	fmt.Printf("%s (#%d)\n", p.Title, p.ID)
	if p.Brand != "" {
		fmt.Printf("  brand:    %s\n", p.Brand)
	}
	fmt.Printf("  category: %s\n", p.Category)
	fmt.Printf("  price:    %s", domain.FormatUSD(decimal.NewFromFloat(p.Price)))
	if p.DiscountPercentage > 0 {
		fmt.Printf("  (%s with %.0f%% off)", domain.FormatUSD(domain.DiscountedPrice(p.Price, p.DiscountPercentage)), p.DiscountPercentage)
	}
	fmt.Println()
	fmt.Printf("  stock:    %s\n", domain.StockStatus(p.Stock))
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}
}

func printCart(c domain.Cart) {
	if len(c.Items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, line := range c.Items {
		lineTotal := decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
		fmt.Printf("%4d  %-40s x%-3d %10s\n", line.ID, line.Title, line.Quantity, domain.FormatUSD(lineTotal))
	}
	fmt.Printf("total: %d items, %s\n", c.TotalItems, domain.FormatUSD(c.TotalPrice))
}
