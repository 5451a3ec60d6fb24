package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sklad/ostatki"
	"github.com/sklad/ostatki/domain/model"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every item in stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.ask(cmd, model.ListAll())
		},
	}
}

func newNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <term>",
		Short: "Find items whose name contains term",
		Long: `Find items whose name contains term, ignoring case.

Example:
  ostatki name плита
  ostatki name "плита термо" --source stock.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ask(cmd, model.ByName(strings.Join(args, " ")))
		},
	}
}

func newProducerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "producer <name>",
		Short: "Show items of one producer",
		Long: `Show items of one producer.

Variant spellings resolve to the same producer, so "техногаббро" also
matches rows tagged "ТЕХНОГАББРО-СЕРВИС". Run "ostatki producers" for the
list of known names.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ask(cmd, model.ByProducer(strings.Join(args, " ")))
		},
	}
}

func newProducersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "producers",
		Short: "List known producers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			producers, outcome, err := a.inventory.Producers(cmd.Context())
			if err != nil {
				fmt.Fprintln(a.stdout, a.inventory.RenderOptions().FetchFailed())
				return fmt.Errorf("list producers: %w", err)
			}
			a.printChunks(ostatki.RenderProducers(producers, outcome, a.inventory.RenderOptions()))
			return nil
		},
	}
}

// ask runs q and prints the answer, one chunk per paragraph.
func (a *app) ask(cmd *cobra.Command, q model.Query) error {
	if q.Kind != model.QueryListAll && strings.TrimSpace(q.Term) == "" {
		return errors.New("empty search term")
	}
	chunks, err := a.inventory.Ask(cmd.Context(), q)
	if err != nil {
		fmt.Fprintln(a.stdout, a.inventory.RenderOptions().FetchFailed())
		return fmt.Errorf("query %s: %w", q.Kind, err)
	}
	a.printChunks(chunks)
	return nil
}

func (a *app) printChunks(chunks []string) {
	for i, chunk := range chunks {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprintln(a.stdout, strings.TrimRight(chunk, "\n"))
	}
}
