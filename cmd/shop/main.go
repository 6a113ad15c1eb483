package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"abod-card-app/internal/catalog"
	"abod-card-app/internal/config"
	"abod-card-app/internal/identity"
	"abod-card-app/internal/model"
	"abod-card-app/internal/purchase"
	"abod-card-app/internal/session"
	"abod-card-app/internal/shopapi"
	"abod-card-app/internal/ui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration
	cfg := config.MustLoad()

	term := ui.NewTerminal(os.Stdin, os.Stdout)
	ctx := context.Background()

	// Durable guest profile store (restores the same guest identity across
	// runs)
	store, err := identity.NewGuestStore(cfg.Identity.GuestStorePath)
	if err != nil {
		log.Fatalf("Failed to open guest store: %v", err)
	}
	defer store.Close()

	// Resolve buyer identity: platform handshake, stored guest, or a fresh
	// registration
	resolver := identity.NewResolver(cfg.Identity.TelegramUserID, store)
	buyer, err := resolver.Resolve(ctx)
	if errors.Is(err, identity.ErrNoIdentity) {
		buyer, err = registerGuest(ctx, term, resolver)
	}
	if err != nil {
		log.Fatalf("Failed to resolve identity: %v", err)
	}

	backend, err := shopapi.New(shopapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to create backend client: %v", err)
	}

	sess := session.New(buyer)
	if err := sess.Hydrate(ctx, backend); err != nil {
		log.Printf("Warning: could not hydrate session: %v", err)
	}

	flow := purchase.NewFlow(
		backend,
		purchase.NewDialog(term, term),
		purchase.NewGate(term, cfg.Purchase.NavigateDelay),
		term, term, term,
		purchase.Config{
			SupportPhone:  cfg.Purchase.SupportPhone,
			DefaultWindow: cfg.Purchase.DefaultWindow,
			SubmitTimeout: cfg.Purchase.SubmitTimeout,
			NavigateDelay: cfg.Purchase.NavigateDelay,
		},
	)

	app := &app{
		term:    term,
		backend: backend,
		catalog: catalog.New(backend),
		sess:    sess,
		flow:    flow,
	}
	app.run(ctx)
}

// registerGuest collects name and phone until validation passes.
func registerGuest(ctx context.Context, term *ui.Terminal, resolver *identity.Resolver) (model.BuyerIdentity, error) {
	term.Notify(ui.NotifyInfo, "Welcome! Register as a guest to browse and order.")
	for {
		name, ok := term.ReadLine("Your name: ")
		if !ok {
			return model.BuyerIdentity{}, errors.New("registration aborted")
		}
		phone, ok := term.ReadLine("Your phone number: ")
		if !ok {
			return model.BuyerIdentity{}, errors.New("registration aborted")
		}

		buyer, err := resolver.RegisterGuest(ctx, name, phone)
		var vErr *identity.ValidationError
		if errors.As(err, &vErr) {
			term.Notify(ui.NotifyError, "Please enter a valid phone number")
			continue
		}
		if err != nil {
			return model.BuyerIdentity{}, err
		}

		term.Notify(ui.NotifySuccess, "Welcome! You can now browse the store and order.")
		return buyer, nil
	}
}

// app is the terminal storefront shell: a section loop over home, orders,
// wallet and search, mirroring the web app's navigation.
type app struct {
	term    *ui.Terminal
	backend *shopapi.Client
	catalog *catalog.Cache
	sess    *session.Session
	flow    *purchase.Flow
}

func (a *app) run(ctx context.Context) {
	greet := a.sess.Buyer().DisplayName()
	if greet != "" {
		a.term.Notify(ui.NotifyInfo, "Hello "+greet)
	}

	section := ui.TargetHome
	for {
		// A scheduled navigation hint (post-purchase, wallet redirect) wins
		// over the current section.
		if target, ok := a.term.TakeNavigation(); ok {
			section = target
		}

		switch section {
		case ui.TargetOrders:
			a.showOrders()
		case ui.TargetWallet:
			a.showWallet()
		default:
			if !a.showHome(ctx) {
				return
			}
			continue
		}
		section = ui.TargetHome
	}
}

// showHome lists products and dispatches commands. Returns false to quit.
func (a *app) showHome(ctx context.Context) bool {
	products, err := a.catalog.Products(ctx)
	if err != nil {
		a.term.Notify(ui.NotifyError, "Could not load the catalog, please retry")
		return promptRetry(a.term)
	}

	fmt.Println("\n=== Abod Card ===")
	fmt.Printf("Balance: %s\n\nProducts:\n", a.sess.Balance())
	for i, p := range products {
		fmt.Printf("  %d. %s - %s\n", i+1, p.Name, p.Description)
	}
	fmt.Println("\nCommands: <number> view packages, orders, wallet, search <text>, refresh, quit")

	input, ok := a.term.ReadLine("> ")
	if !ok {
		return false
	}

	switch {
	case input == "quit" || input == "q":
		return false
	case input == "orders":
		a.showOrders()
	case input == "wallet":
		a.showWallet()
	case input == "refresh":
		if err := a.catalog.Refresh(ctx); err != nil {
			a.term.Notify(ui.NotifyError, "Refresh failed, please retry")
		}
		if err := a.sess.Hydrate(ctx, a.backend); err == nil {
			a.term.Notify(ui.NotifyInfo, "Refreshed")
		}
	case strings.HasPrefix(input, "search "):
		a.showSearch(ctx, strings.TrimPrefix(input, "search "))
	default:
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(products) {
			a.showProduct(ctx, products[n-1])
		}
	}
	return true
}

// showProduct lists a product's variants and runs a purchase on selection.
func (a *app) showProduct(ctx context.Context, product model.Product) {
	variants, err := a.catalog.VariantsFor(ctx, product.ID)
	if err != nil {
		a.term.Notify(ui.NotifyError, "Could not load packages, please retry")
		return
	}
	if len(variants) == 0 {
		a.term.Notify(ui.NotifyWarning, "No packages available for this product")
		return
	}

	fmt.Printf("\n%s - choose a package:\n", product.Name)
	for i, v := range variants {
		fmt.Printf("  %d. %s (%s, %s)\n", i+1, v.Name, v.Price, v.Delivery.Description())
	}

	input, ok := a.term.ReadLine("> ")
	if !ok {
		return
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(variants) {
		return
	}

	a.buy(ctx, variants[n-1])
}

// buy runs one purchase attempt and reports the terminal state.
func (a *app) buy(ctx context.Context, variant model.CatalogVariant) {
	result, err := a.flow.Buy(ctx, a.sess, variant)
	if err != nil {
		a.term.Notify(ui.NotifyError, "Could not start the purchase: "+err.Error())
		return
	}

	if result.Handoff != "" {
		fmt.Printf("\nOpen this link to complete your order:\n%s\n", result.Handoff)
		return
	}
	if result.State == purchase.StateAborted {
		a.term.Notify(ui.NotifyInfo, "Purchase cancelled")
	}
}

// showOrders renders the order history, newest first.
func (a *app) showOrders() {
	orders := a.sess.Orders()
	if len(orders) == 0 {
		fmt.Println("\nNo orders yet.")
		return
	}

	fmt.Println("\nYour orders:")
	for _, o := range orders {
		status := "pending"
		if o.Completed() {
			status = "completed"
		}
		fmt.Printf("  #%.8s %s - %s [%s] %s\n",
			o.ID, o.ProductName, o.CategoryName, status, model.CentsFromDollars(o.Price))
		if o.Completed() && o.CodeSent != "" {
			fmt.Printf("    code: %s\n", o.CodeSent)
		}
	}
}

// showWallet shows the cached balance and the top-up hint. Top-up itself
// happens in the bot.
func (a *app) showWallet() {
	fmt.Printf("\nWallet balance: %s\n", a.sess.Balance())
	fmt.Println("Top up your wallet through the bot: https://t.me/AbodCard_bot")
}

// showSearch matches products and packages against the cached catalog.
func (a *app) showSearch(ctx context.Context, query string) {
	products, variants, err := a.catalog.Search(ctx, query)
	if err != nil {
		a.term.Notify(ui.NotifyError, "Search failed, please retry")
		return
	}
	if len(products) == 0 && len(variants) == 0 {
		fmt.Printf("\nNo results for %q\n", query)
		return
	}

	if len(products) > 0 {
		fmt.Printf("\nProducts (%d):\n", len(products))
		for _, p := range products {
			fmt.Printf("  %s - %s\n", p.Name, p.Description)
		}
	}
	if len(variants) > 0 {
		fmt.Printf("\nPackages (%d):\n", len(variants))
		for _, v := range variants {
			fmt.Printf("  %s (%s)\n", v.Name, v.Price)
		}
	}
}

func promptRetry(term *ui.Terminal) bool {
	input, ok := term.ReadLine("Retry? [y/N]: ")
	return ok && strings.EqualFold(input, "y")
}
