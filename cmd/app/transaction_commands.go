package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/stockpay/cmd/app/commands"
	"github.com/allisson/stockpay/internal/app"
	"github.com/allisson/stockpay/internal/config"
	"github.com/allisson/stockpay/internal/httputil"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getTransactionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "statistics",
			Usage: "Print transaction counts and revenue by payment status",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TransactionUseCase()
				if err != nil {
					return err
				}

				return commands.RunStatistics(ctx, useCase, os.Stdout, cmd.String("format"))
			},
		},
		{
			Name:  "list-transactions",
			Usage: "List transactions, newest first",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "offset",
					Aliases: []string{"o"},
					Value:   0,
					Usage:   "Number of transactions to skip",
				},
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Value:   httputil.DefaultLimit,
					Usage:   "Maximum number of transactions to print (1-100)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TransactionUseCase()
				if err != nil {
					return err
				}

				return commands.RunListTransactions(
					ctx,
					useCase,
					os.Stdout,
					int(cmd.Int("offset")),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "show-transaction",
			Usage: "Print a transaction and its state history",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Transaction id (TXN-...)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TransactionUseCase()
				if err != nil {
					return err
				}

				return commands.RunShowTransaction(
					ctx,
					useCase,
					os.Stdout,
					cmd.String("id"),
					cmd.String("format"),
				)
			},
		},
	}
}
