package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ordersapp/orders-app/internal/config"
	"github.com/ordersapp/orders-app/internal/repo"
	"github.com/ordersapp/orders-app/internal/ui"
	"github.com/ordersapp/orders-app/pkg/apiclient"
	"github.com/ordersapp/orders-app/pkg/db"
)

func usage() {
	fmt.Println("expected 'list', 'show', 'create', 'edit', 'delete' or 'seed' subcommand")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()
	api := apiclient.NewClient(cfg.APIURL)
	in := bufio.NewScanner(os.Stdin)

	switch os.Args[1] {
	case "list":
		runList(ctx, api)
	case "show":
		showCmd := flag.NewFlagSet("show", flag.ExitOnError)
		id := showCmd.Uint("id", 0, "Order id")
		showCmd.Parse(os.Args[2:])
		if *id == 0 {
			fmt.Println("id is required")
			showCmd.PrintDefaults()
			os.Exit(1)
		}
		runShow(ctx, api, uint(*id))
	case "create":
		runForm(ctx, api, in, ui.NewOrderRoute)
	case "edit":
		editCmd := flag.NewFlagSet("edit", flag.ExitOnError)
		id := editCmd.Uint("id", 0, "Order id")
		editCmd.Parse(os.Args[2:])
		if *id == 0 {
			fmt.Println("id is required")
			editCmd.PrintDefaults()
			os.Exit(1)
		}
		runForm(ctx, api, in, strconv.FormatUint(uint64(*id), 10))
	case "delete":
		deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
		id := deleteCmd.Uint("id", 0, "Order id")
		deleteCmd.Parse(os.Args[2:])
		if *id == 0 {
			fmt.Println("id is required")
			deleteCmd.PrintDefaults()
			os.Exit(1)
		}
		runDelete(ctx, api, in, uint(*id))
	case "seed":
		runSeed(ctx, cfg)
	default:
		usage()
		os.Exit(1)
	}
}

func runList(ctx context.Context, api *apiclient.Client) {
	view := ui.NewOrderListView(api)
	if err := view.Refresh(ctx); err != nil {
		log.Fatalf("failed to load orders: %v", err)
	}

	fmt.Printf("%-5s %-12s %-12s %-10s %s\n", "ID", "NUMBER", "DATE", "PRODUCTS", "FINAL PRICE")
	for _, o := range view.Orders {
		fmt.Printf("%-5d %-12s %-12s %-10d $%.2f\n",
			o.ID, o.OrderNumber, o.Date.Format("2006-01-02"), o.NumProducts, o.FinalPrice)
	}
}

func runShow(ctx context.Context, api *apiclient.Client, id uint) {
	order, err := api.Order(ctx, id)
	if err != nil {
		log.Fatalf("failed to load order: %v", err)
	}

	fmt.Printf("Order #%d  %s  %s\n", order.ID, order.OrderNumber, order.Date.Format("2006-01-02"))
	for _, p := range order.Products {
		fmt.Printf("  %-25s x%-3d $%.2f = $%.2f\n", p.Name, p.Quantity, p.UnitPrice, p.TotalPrice)
	}
	fmt.Printf("Items: %d  Final price: $%.2f\n", order.TotalItems, order.FinalPrice)
}

func runDelete(ctx context.Context, api *apiclient.Client, in *bufio.Scanner, id uint) {
	view := ui.NewOrderListView(api)
	view.RequestDelete(id)

	fmt.Printf("Delete order %d? [y/N]: ", id)
	if !promptYes(in) {
		view.CancelDelete()
		fmt.Println("Cancelled.")
		return
	}
	if err := view.ConfirmDelete(ctx); err != nil {
		log.Fatalf("failed to delete order: %v", err)
	}
	fmt.Println("Orden eliminada")
}

func runForm(ctx context.Context, api *apiclient.Client, in *bufio.Scanner, route string) {
	view, err := ui.NewOrderFormView(api, route)
	if err != nil {
		log.Fatalf("invalid order id: %v", err)
	}
	if err := view.Load(ctx); err != nil {
		log.Fatalf("failed to load form: %v", err)
	}

	for {
		printForm(view)
		fmt.Print("[n]umber [a]dd [e]dit <i> [r]emove <i> [s]ave [q]uit: ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n":
			fmt.Print("Order number: ")
			if in.Scan() {
				view.OrderNumber = strings.TrimSpace(in.Text())
			}
		case "a":
			view.OpenAddModal()
			fillModal(view, in)
		case "e":
			i, ok := lineIndex(view, fields)
			if !ok {
				continue
			}
			view.OpenEditModal(i)
			fillModal(view, in)
		case "r":
			i, ok := lineIndex(view, fields)
			if !ok {
				continue
			}
			view.RequestRemove(i)
			fmt.Printf("Remove line %d? [y/N]: ", i+1)
			if promptYes(in) {
				view.ConfirmRemove()
			} else {
				view.CancelRemove()
			}
		case "s":
			if err := view.Submit(ctx); err != nil {
				fmt.Printf("Error saving order: %v\n", err)
				continue
			}
			fmt.Println("Order saved.")
			return
		case "q":
			return
		}
	}
}

func printForm(view *ui.OrderFormView) {
	fmt.Printf("\nOrder number: %s\n", view.OrderNumber)
	for i, p := range view.Selected {
		fmt.Printf("  %d. %-25s x%-3d $%.2f\n", i+1, p.Name, p.Quantity, p.UnitPrice)
	}
	fmt.Printf("Items: %d  Final price: $%.2f\n", view.TotalItems(), view.FinalPrice())
}

func fillModal(view *ui.OrderFormView, in *bufio.Scanner) {
	fmt.Println("Products:")
	for _, p := range view.Catalog {
		fmt.Printf("  %d. %-25s $%.2f\n", p.ID, p.Name, p.UnitPrice)
	}

	fmt.Print("Product id: ")
	if in.Scan() {
		if id, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil && id > 0 {
			view.Modal.ProductID = uint(id)
		}
	}
	fmt.Print("Quantity: ")
	if in.Scan() {
		if qty, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil && qty > 0 {
			view.Modal.Quantity = uint(qty)
		}
	}

	if err := view.ApplyModal(); err != nil {
		fmt.Printf("Error: %v\n", err)
		view.CloseModal()
	}
}

func lineIndex(view *ui.OrderFormView, fields []string) (int, bool) {
	if len(fields) < 2 {
		fmt.Println("line number required")
		return 0, false
	}
	i, err := strconv.Atoi(fields[1])
	if err != nil || i < 1 || i > len(view.Selected) {
		fmt.Println("invalid line number")
		return 0, false
	}
	return i - 1, true
}

func promptYes(in *bufio.Scanner) bool {
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}

func runSeed(ctx context.Context, cfg config.Config) {
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	if err := repo.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}
	if err := repo.NewGormRepo(gormDB).Seed(ctx); err != nil {
		log.Fatalf("seed error: %v", err)
	}
	fmt.Println("Seed data inserted.")
}
