package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"invtrack/internal/domain"
	"invtrack/internal/inventory"
	"invtrack/internal/ui/views"
)

// tableWidth is the width of the table printed by list
const tableWidth = 100

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list",
			Usage: "print the products, optionally filtered",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "filter",
					Aliases: []string{"f"},
					Usage:   "only show products whose name or description contains `TERM`",
				},
			},
			Action: listAction,
		},
		{
			Name:  "add",
			Usage: "create a product",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "product name", Required: true},
				&cli.StringFlag{Name: "price", Aliases: []string{"p"}, Usage: "unit price", Required: true},
				&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "free text description"},
				&cli.StringFlag{Name: "quantity", Aliases: []string{"q"}, Usage: "units in stock (default 0)"},
				&cli.BoolFlag{Name: "permissive", Usage: "send negative price or quantity unchanged"},
			},
			Action: addAction,
		},
		{
			Name:      "delete",
			Usage:     "delete a product after confirmation",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
			},
			Action: deleteAction,
		},
	}
}

func listAction(c *cli.Context) error {
	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	client := inventory.NewClient(env.store, inventory.WithBus(env.bus))
	if err := client.Load(c.Context); err != nil {
		return err
	}
	term := c.String("filter")
	products := client.SetSearchTerm(term)

	printTable(c.App.Writer, products, term, env.cfg.UISettings.Currency, env.cfg.UISettings.ShowDescription)
	return nil
}

func printTable(w io.Writer, products []domain.Product, term, currency string, showDescription bool) {
	r := views.NewProductRenderer(views.NewStyles(), currency)
	cols := views.LayoutColumns(tableWidth, showDescription)

	fmt.Fprintln(w, r.RenderHeader(cols))
	for _, p := range products {
		fmt.Fprintln(w, r.RenderProduct(p, cols, false, term))
	}
	fmt.Fprintf(w, "%d product(s)\n", len(products))
}

func addAction(c *cli.Context) error {
	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	strict := env.cfg.Validation.Strict && !c.Bool("permissive")
	client := inventory.NewClient(env.store,
		inventory.WithBus(env.bus),
		inventory.WithStrict(strict),
	)

	draft := domain.ProductDraft{
		Name:        c.String("name"),
		Description: c.String("description"),
		Price:       c.String("price"),
		Quantity:    c.String("quantity"),
	}
	if err := client.Create(c.Context, draft); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Created %q, store now holds %d product(s)\n",
		draft.Name, len(client.Snapshot().Collection))
	return nil
}

func deleteAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("delete needs exactly one product ID")
	}
	id := domain.ProductID(c.Args().First())

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	var confirm inventory.Confirmer = promptConfirmer(c.App.Reader, c.App.Writer)
	if c.Bool("yes") {
		confirm = inventory.ConfirmFunc(func(context.Context, string) (bool, error) {
			return true, nil
		})
	}
	client := inventory.NewClient(env.store,
		inventory.WithBus(env.bus),
		inventory.WithConfirmer(confirm),
	)

	// Load first so the prompt can name the product.
	if err := client.Load(c.Context); err != nil {
		return err
	}
	deleted, err := client.Delete(c.Context, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(c.App.Writer, "Aborted")
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Deleted %s, store now holds %d product(s)\n",
		id, len(client.Snapshot().Collection))
	return nil
}

// promptConfirmer asks on w and reads a y/N answer from r. Anything but y or yes declines.
func promptConfirmer(r io.Reader, w io.Writer) inventory.ConfirmFunc {
	reader := bufio.NewReader(r)
	return func(ctx context.Context, prompt string) (bool, error) {
		fmt.Fprintf(w, "%s [y/N] ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || answer == "") {
			if err == io.EOF {
				return false, nil
			}
			return false, errors.Wrap(err, "failed to read answer")
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
