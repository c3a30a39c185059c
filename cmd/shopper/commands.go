package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/pariney/saree-storefront/internal/aggregator"
)

var (
	errEmptyCart         = errors.New("cart is empty")
	errCredentialsNeeded = errors.New("email and password are required for checkout")
)

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "add":
		id, err := productArg(args, 1)
		if err != nil {
			return err
		}
		return a.add(ctx, id)
	case "remove":
		id, err := productArg(args, 1)
		if err != nil {
			return err
		}
		return a.mutate(ctx, aggregator.RemoveFromCart{ProductID: id}, "removed product %d", id)
	case "qty":
		id, err := productArg(args, 2)
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		if _, ok := a.store.State().Line(id); !ok {
			return fmt.Errorf("product %d is not in the cart", id)
		}
		return a.mutate(ctx, aggregator.SetQuantity{ProductID: id, Quantity: qty}, "product %d quantity set to %d", id, qty)
	case "wish":
		id, err := productArg(args, 1)
		if err != nil {
			return err
		}
		verb := "added to"
		if a.store.State().IsWishlisted(id) {
			verb = "removed from"
		}
		return a.mutate(ctx, aggregator.ToggleWishlist{ProductID: id}, "product %d %s wishlist", id, verb)
	case "show":
		return a.show()
	case "checkout":
		return a.checkout(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func productArg(args []string, want int) (int64, error) {
	if len(args) != want {
		return 0, fmt.Errorf("expected %d argument(s), got %d", want, len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", args[0])
	}
	return id, nil
}

// mutate applies m and reports. A persistence failure is logged; the change
// still holds for this process.
func (a *app) mutate(ctx context.Context, m aggregator.Mutation, format string, args ...any) error {
	if err := a.store.Dispatch(ctx, m); err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "shopper.persist_failed")
	}
	fmt.Fprintf(a.out, format+"\n", args...)
	return nil
}

// add fetches the product so the cart line carries a full snapshot.
func (a *app) add(ctx context.Context, id int64) error {
	product, err := a.api.Product(ctx, id)
	if err != nil {
		return err
	}
	return a.mutate(ctx, aggregator.AddToCart{Product: product}, "added %s", product.Name)
}

func (a *app) show() error {
	state := a.store.State()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	if state.LineCount == 0 {
		fmt.Fprintln(tw, "cart is empty")
	} else {
		fmt.Fprintln(tw, "ID\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
		for _, line := range state.Lines {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", line.ID, line.Name, line.Quantity, rupees(line.Price), rupees(line.Subtotal()))
		}
		fmt.Fprintf(tw, "\t%d item(s)\t\tsubtotal\t%s\n", state.ItemCount, rupees(state.TotalPrice))
		fmt.Fprintf(tw, "\t\t\tshipping\t%s\n", rupees(state.Shipping))
		fmt.Fprintf(tw, "\t\t\ttotal\t%s\n", rupees(state.GrandTotal))
	}
	if len(state.Wishlist) > 0 {
		fmt.Fprintf(tw, "wishlist: %v\n", state.Wishlist)
	}
	return tw.Flush()
}

// checkout mirrors the local cart onto the server cart, then places the
// order. The server derives items and total from its own cart.
func (a *app) checkout(ctx context.Context) error {
	state := a.store.State()
	if state.LineCount == 0 {
		return errEmptyCart
	}
	if a.api.Token() == "" {
		if a.email == "" || a.password == "" {
			return errCredentialsNeeded
		}
		if _, err := a.api.Login(ctx, a.email, a.password); err != nil {
			return err
		}
	}

	if err := a.syncCart(ctx, state.Lines); err != nil {
		return err
	}

	order, err := a.api.Checkout(ctx, a.newKey())
	if err != nil {
		return err
	}
	ctx = a.logg.WithField(ctx, "order_id", order.ID.String())
	a.logg.Info(ctx, "shopper.order_placed")

	if err := a.store.Dispatch(ctx, aggregator.ClearCart{}); err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "shopper.clear_failed")
	}
	fmt.Fprintf(a.out, "order %s placed: %d item(s), total %s\n", order.ID, len(order.Items), rupees(order.Total))
	return nil
}

func (a *app) syncCart(ctx context.Context, lines []aggregator.Line) error {
	remote, err := a.api.Cart(ctx)
	if err != nil {
		return err
	}
	onServer := make(map[int64]int, len(remote))
	for _, item := range remote {
		onServer[item.ProductID] = item.Quantity
	}

	for _, line := range lines {
		qty, ok := onServer[line.ID]
		delete(onServer, line.ID)
		switch {
		case !ok:
			err = a.api.AddToCart(ctx, line.ID, line.Quantity)
		case qty != line.Quantity:
			err = a.api.SetCartQuantity(ctx, line.ID, line.Quantity)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("sync product %d: %w", line.ID, err)
		}
	}
	for id := range onServer {
		if err := a.api.RemoveFromCart(ctx, id); err != nil {
			return fmt.Errorf("sync product %d: %w", id, err)
		}
	}
	return nil
}

func rupees(amount int64) string {
	return "₹" + strconv.FormatInt(amount, 10)
}
