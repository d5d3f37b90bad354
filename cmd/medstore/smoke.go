package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/medstore/pkg/client"
)

func (c *cli) smokeCmd() *cobra.Command {
	var baseURL, email, password string
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the storefront happy path against a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = fmt.Sprintf("smoke+%d@example.com", time.Now().UnixNano())
			}
			s, err := client.New(baseURL)
			if err != nil {
				return err
			}
			if err := runSmoke(cmd.Context(), s, c.log, email, password); err != nil {
				return c.fail("smoke_failed", err)
			}
			c.log.Info("smoke_passed", "base_url", baseURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "server to exercise")
	cmd.Flags().StringVar(&email, "email", "", "account to register, random when empty")
	cmd.Flags().StringVar(&password, "password", "secret1", "account password")
	return cmd
}

func expectStatus(step string, err error, want int) error {
	if got := client.StatusOf(err); got != want {
		return errors.Errorf("%s: want status %d, got %d (%v)", step, want, got, err)
	}
	return nil
}

// runSmoke registers a fresh account and walks auth, catalog and cart. The
// cart step is skipped when the catalog has nothing with two units in stock.
func runSmoke(ctx context.Context, s *client.Session, l *slog.Logger, email, password string) error {
	if _, err := s.Register(ctx, client.Registration{Email: email, Password: password, FullName: "Smoke Test"}); err != nil {
		return errors.Wrap(err, "register")
	}
	l.Info("smoke_step_ok", "step", "register")

	_, err := s.Register(ctx, client.Registration{Email: email, Password: password, FullName: "Smoke Test"})
	if err := expectStatus("duplicate register", err, http.StatusConflict); err != nil {
		return err
	}

	_, err = s.Login(ctx, email, password+"-wrong")
	if err := expectStatus("wrong password", err, http.StatusUnauthorized); err != nil {
		return err
	}

	if _, err := s.Login(ctx, email, password); err != nil {
		return errors.Wrap(err, "login")
	}
	me, err := s.Me(ctx)
	if err != nil {
		return errors.Wrap(err, "me")
	}
	if me.ID != s.User.ID {
		return errors.Errorf("me: got user %s, logged in as %s", me.ID, s.User.ID)
	}
	l.Info("smoke_step_ok", "step", "login")

	products, _, err := s.Products(ctx, client.ProductQuery{Limit: 20})
	if err != nil {
		return errors.Wrap(err, "products")
	}
	l.Info("smoke_step_ok", "step", "products", "count", len(products))

	var pick *client.Product
	for i := range products {
		if products[i].Stock >= 2 {
			pick = &products[i]
			break
		}
	}
	if pick != nil {
		if err := smokeCart(ctx, s, pick); err != nil {
			return err
		}
		l.Info("smoke_step_ok", "step", "cart", "product_id", pick.ID)
	} else {
		l.Warn("smoke_step_skipped", "step", "cart", "reason", "no product with stock")
	}

	if err := s.Logout(ctx); err != nil {
		return errors.Wrap(err, "logout")
	}
	_, err = s.Me(ctx)
	if err := expectStatus("me after logout", err, http.StatusUnauthorized); err != nil {
		return err
	}
	l.Info("smoke_step_ok", "step", "logout")
	return nil
}

func smokeCart(ctx context.Context, s *client.Session, p *client.Product) error {
	if err := s.ClearCart(ctx); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	if _, err := s.AddToCart(ctx, p.ID, 1); err != nil {
		return errors.Wrap(err, "add to cart")
	}
	cart, err := s.AddToCart(ctx, p.ID, 1)
	if err != nil {
		return errors.Wrap(err, "add to cart again")
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		return errors.Errorf("cart: want one line with quantity 2, got %+v", cart.Items)
	}
	if want := 2 * p.Price; cart.Items[0].LineTotal != want {
		return errors.Errorf("cart: want line total %.2f, got %.2f", want, cart.Items[0].LineTotal)
	}
	return errors.Wrap(s.ClearCart(ctx), "clear cart")
}
