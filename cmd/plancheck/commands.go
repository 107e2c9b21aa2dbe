package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	redisclient "github.com/yungbote/cemse-backend/internal/clients/redis"
	types "github.com/yungbote/cemse-backend/internal/domain"
	bp "github.com/yungbote/cemse-backend/internal/modules/businessplan"
	apperr "github.com/yungbote/cemse-backend/internal/pkg/errors"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
	"github.com/yungbote/cemse-backend/internal/services"
)

// errInvalid marks a document that failed validation; the report is already printed.
var errInvalid = errors.New("plan is invalid")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "plancheck",
		Short:        "Validate, sanitize and score business plan documents",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(), newSanitizeCmd(), newScoreCmd(), newTokenCmd(), newWatchCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var update bool
	cmd := &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Check a plan document against the create (or --update) rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			check := bp.ValidateForCreate
			if update {
				check = bp.ValidateForUpdate
			}
			out := map[string]any{"valid": true}
			err = check(in)
			if err == nil && !update {
				err = bp.ValidateSanitized(bp.Sanitize(bp.FromInput(in)))
			}
			var ve *apperr.ValidationError
			if errors.As(err, &ve) {
				out = map[string]any{"valid": false, "field": ve.Field, "reason": ve.Reason}
			} else if err != nil {
				return err
			}
			if werr := writeJSON(cmd.OutOrStdout(), out); werr != nil {
				return werr
			}
			if err != nil {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "apply partial-update rules instead of create rules")
	return cmd
}

func newSanitizeCmd() *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "sanitize <file.json|->",
		Short: "Print the sanitized plan record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sanitizerFor(policy)
			if err != nil {
				return err
			}
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), s.Sanitize(bp.FromInput(in)))
		},
	}
	cmd.Flags().StringVar(&policy, "policy", string(bp.PolicyScriptStrip), "sanitize policy: script or strict")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "score <file.json|->",
		Short: "Print the completion report of the sanitized plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sanitizerFor(policy)
			if err != nil {
				return err
			}
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), bp.Report(s.Sanitize(bp.FromInput(in))))
		},
	}
	cmd.Flags().StringVar(&policy, "policy", string(bp.PolicyScriptStrip), "sanitize policy: script or strict")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token for the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET_KEY")
			}
			auth := services.NewAuthService(logger.Nop(), secret)
			tok, err := auth.IssueToken(subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 secret (defaults to $JWT_SECRET_KEY)")
	cmd.Flags().StringVar(&subject, "subject", "", "owner id placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var addr, channel string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print plan lifecycle events published on redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = os.Getenv("REDIS_ADDR")
			}
			if addr == "" {
				return errors.New("--redis-addr or REDIS_ADDR required")
			}
			bus, err := redisclient.NewPlanEventBus(logger.Nop(), redisclient.Options{Addr: addr, Channel: channel})
			if err != nil {
				return err
			}
			defer bus.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			out := cmd.OutOrStdout()
			if err := bus.StartForwarder(ctx, func(ev types.PlanEvent) {
				_ = writeJSON(out, ev)
			}); err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "redis-addr", "", "redis address (defaults to $REDIS_ADDR)")
	cmd.Flags().StringVar(&channel, "channel", redisclient.DefaultChannel, "pub/sub channel")
	return cmd
}

func sanitizerFor(policy string) (*bp.Sanitizer, error) {
	p, err := bp.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	return bp.NewSanitizer(p), nil
}

func readInput(cmd *cobra.Command, path string) (types.PlanInput, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return types.PlanInput{}, err
		}
		defer f.Close()
		r = f
	}
	var in types.PlanInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return types.PlanInput{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return in, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
