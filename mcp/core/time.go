package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ntpmcp/ntpmcp/types"
	"github.com/ntpmcp/ntpmcp/whitelist"
)

// Texts returned to the caller for rejected calls. The wording is part of
// the external contract.
const (
	rateLimitText = "Error: Rate limit exceeded. Please wait before making another request."
	emptyNameText = "Error: Server name cannot be empty"
	formatText    = "Error: Invalid server name format"
	encodingText  = "Error: Invalid server name encoding (IDN conversion failed)"

	securityHint = "\n\nPlease use one of the approved servers. " +
		"Use 'list_approved_servers' tool to see the list."
)

// GetCurrentTime handles the get_current_time tool. The stages run in a
// fixed order: rate admission, cache lookup, server-name validation, the
// network query with local fallback, rendering, and the cache write-back.
// Every outcome except a canceled ctx terminates in a text payload.
func (env *Environment) GetCurrentTime(ctx context.Context) (string, error) {
	if !env.Limiter.Admit() {
		env.Metrics.RateLimited.Add(1)
		env.Logger.Info("rate limit exceeded")
		return rateLimitText, nil
	}

	env.refreshMtx.Lock()
	defer env.refreshMtx.Unlock()

	if entry, ok := env.Cache.Get(); ok {
		env.Metrics.CacheHits.Add(1)
		env.Logger.Info("returning cached response", "server", entry.Reading.Server)
		return entry.Payload + types.CachedMarker, nil
	}
	env.Metrics.CacheMisses.Add(1)

	server, err := env.Validator.Validate(env.ServerName)
	if err != nil {
		env.Metrics.Blocked.Add(1)
		env.Logger.Warn("blocked NTP server request", "server", env.ServerName, "err", err)
		return validationText(err), nil
	}

	env.Logger.Info("using approved NTP server", "server", server)

	start := time.Now()
	reading, err := env.Client.Query(ctx, server)
	env.Metrics.QueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			// the transport aborted the call; discard without caching
			return "", err
		}
		env.Metrics.Fallbacks.Add(1)
		reading = env.Fallback.Reading(env.Client.Cause(err))
		return reading.Render(env.Location), nil
	}

	payload := reading.Render(env.Location)
	env.Cache.Put(reading, payload)
	return payload, nil
}

// validationText renders a whitelist rejection as the caller-facing
// payload. Security rejections carry the remediation hint; malformed
// names are plain errors.
func validationText(err error) string {
	var (
		encErr   whitelist.ErrInvalidEncoding
		fmtErr   whitelist.ErrInvalidFormat
		ipErr    whitelist.ErrIPAddress
		blockErr whitelist.ErrBlockedPattern
		denyErr  whitelist.ErrNotApproved
	)
	switch {
	case errors.Is(err, whitelist.ErrEmptyName):
		return emptyNameText
	case errors.As(err, &encErr):
		return encodingText
	case errors.As(err, &fmtErr):
		return formatText
	case errors.As(err, &ipErr):
		return securityText(fmt.Sprintf(
			"Direct IP addresses not allowed for security reasons (detected %s)", ipErr.Kind))
	case errors.As(err, &blockErr):
		return securityText(fmt.Sprintf(
			"Server '%s' blocked: matches pattern '%s'", blockErr.Name, blockErr.Pattern))
	case errors.As(err, &denyErr):
		return securityText(fmt.Sprintf(
			"Server '%s' not in approved list (security policy: default deny)", denyErr.Name))
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func securityText(reason string) string {
	return "Security Error: " + reason + securityHint
}
