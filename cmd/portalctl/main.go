// Command portalctl is the staff command line client of the identity portal.
//
//	portalctl [-server addr] [-admin-key key] <command> [flags]
//
// Commands:
//
//	status  <requestId>                        applicant status of a request
//	list    [-status S] [-q text] [-page N] [-page-size N]
//	update  -id <requestId> -status S [-info-required true|false]
//	version                                    server build info
//
// Results are printed to stdout as JSON. Logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/adapter"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

var errUsage = errors.New("usage: portalctl [-server addr] [-admin-key key] <status|list|update|version> [flags]")

func main() {
	log := logger.New(os.Stderr, "portalctl")

	if err := run(context.Background(), os.Args[1:], os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("portalctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, log *logger.Logger) error {
	global := flag.NewFlagSet("portalctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	serverAddr := global.String("server", envOr("PORTAL_ADDRESS", "localhost:8080"), "portal address")
	adminKey := global.String("admin-key", os.Getenv("ADMIN_PORTAL_KEY"), "admin portal key")
	timeout := global.Duration("timeout", 15*time.Second, "request timeout")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if global.NArg() == 0 {
		return errUsage
	}

	client, err := adapter.NewHTTPPortalClient(*serverAddr, *timeout, log)
	if err != nil {
		return err
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "status":
		if len(rest) != 1 {
			return errUsage
		}
		status, err := client.Status(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(stdout, status)

	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		status := fs.String("status", "", "PENDING, APPROVED or REJECTED")
		query := fs.String("q", "", "search text")
		page := fs.Int("page", 0, "page number")
		pageSize := fs.Int("page-size", 0, "page size")
		if err = fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}

		if err = client.Login(ctx, *adminKey); err != nil {
			return err
		}
		defer logout(ctx, client, log)

		list, err := client.List(ctx, models.AdminListQuery{
			Status:   models.IdentityStatus(*status),
			Query:    *query,
			Page:     *page,
			PageSize: *pageSize,
		})
		if err != nil {
			return err
		}
		return printJSON(stdout, list)

	case "update":
		fs := flag.NewFlagSet("update", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		requestID := fs.String("id", "", "request id")
		status := fs.String("status", "", "PENDING, APPROVED or REJECTED")
		infoRequired := fs.String("info-required", "", "true or false; unchanged when empty")
		if err = fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}

		payload := models.AdminUpdatePayload{RequestID: *requestID, Status: models.IdentityStatus(*status)}
		if *infoRequired != "" {
			v, err := strconv.ParseBool(*infoRequired)
			if err != nil {
				return fmt.Errorf("invalid -info-required: %w", err)
			}
			payload.InfoRequired = &v
		}

		if err = client.Login(ctx, *adminKey); err != nil {
			return err
		}
		defer logout(ctx, client, log)

		updated, err := client.Update(ctx, payload)
		if err != nil {
			return err
		}
		log.Info().Str("requestId", updated.RequestID).Str("status", string(updated.Status)).Msg("status updated")
		return printJSON(stdout, updated)

	case "version":
		version, err := client.Version(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, version)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func logout(ctx context.Context, client adapter.PortalClient, log *logger.Logger) {
	if err := client.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("logout failed")
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
