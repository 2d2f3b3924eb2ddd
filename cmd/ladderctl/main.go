// cmd/ladderctl/main.go
//
// Operator CLI for the ladder engine.
//   - build      load-or-build the catalog (and persist it) then report
//   - solve      shortest ladder between two words
//   - neighbors  words one letter away
//   - pairs      precomputed puzzles for a word length
//   - token      mint a dev JWT for the HTTP API
//
// Reads the same environment as the server (see internal/config).

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordladder/internal/config"
	"github.com/robalobadob/wordladder/internal/engine"
	"github.com/robalobadob/wordladder/internal/httpserver"
	"github.com/robalobadob/wordladder/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "ladderctl",
		Short:         "Word ladder catalog tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl := zerolog.WarnLevel
			if verbose {
				lvl = zerolog.InfoLevel
			}
			zerolog.SetGlobalLevel(lvl)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log catalog progress")

	rootCmd.AddCommand(createBuildCmd())
	rootCmd.AddCommand(createSolveCmd())
	rootCmd.AddCommand(createNeighborsCmd())
	rootCmd.AddCommand(createPairsCmd())
	rootCmd.AddCommand(createTokenCmd())
	return rootCmd
}

// warmEngine loads config and returns a ready engine backed by a
// throwaway memory session store.
func warmEngine(ctx context.Context) (*engine.Engine, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	eng, closeCache, err := engine.FromConfig(ctx, cfg, store.NewMemoryStore())
	if err != nil {
		return nil, nil, err
	}
	if err := eng.Warm(ctx); err != nil {
		_ = closeCache()
		return nil, nil, err
	}
	return eng, closeCache, nil
}

func createBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Load or build the catalog and print its stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, done, err := warmEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			st, err := eng.CacheStats(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	}
}

func createSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve [from] [to]",
		Short: "Print a shortest ladder between two words",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, done, err := warmEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			path, ok, err := eng.Path(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no ladder from %s to %s", args[0], args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d steps)\n", strings.Join(path, " -> "), len(path)-1)
			return nil
		},
	}
}

func createNeighborsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors [word]",
		Short: "List dictionary words one letter away",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, done, err := warmEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			ns, err := eng.Neighbors(args[0])
			if err != nil {
				return err
			}
			for _, w := range ns {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}

func createPairsCmd() *cobra.Command {
	var length, limit int
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Print precomputed start/target pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, done, err := warmEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			ps, err := eng.Pairs(length)
			if err != nil {
				return err
			}
			if ps == nil {
				return fmt.Errorf("length %d is not configured", length)
			}
			if limit > 0 && len(ps) > limit {
				ps = ps[:limit]
			}
			for _, p := range ps {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", p.Start, p.Target, p.Steps())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 4, "word length")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many (0: all)")
	return cmd
}

func createTokenCmd() *cobra.Command {
	var sub, username string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a JWT for the HTTP API with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tok, exp, err := httpserver.SignToken(cfg.JWTSecret, sub, username, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "principal id (JWT \"id\" claim)")
	cmd.Flags().StringVar(&username, "username", "", "optional username claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
