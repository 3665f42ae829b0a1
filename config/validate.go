package config

import (
	"math"
	"strings"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

var (
	validPolicies       = []string{"largest", "index", "primary"}
	validServers        = []string{"auto", "x11", "wayland", "native"}
	validButtons        = []string{"left", "middle", "right"}
	validBackends       = []string{"display", "xdotool", "dry-run"}
	validSurfaces       = []string{"stdio", "web"}
	validInterpolations = []string{"nearest", "approx-bilinear", "bilinear", "catmullrom"}
	validFrameFormats   = []string{"png", "jpeg"}
	validStorageTypes   = []string{"memory", "jsonl", "sqlite", "postgres", "redis"}
)

// MaxZoomFactor bounds zoom.factor
const MaxZoomFactor = 20

// Validate reports every invalid key without modifying the configuration
func (c *Config) Validate() domain.ConfigErrors {
	return c.Clone().Sanitize(DefaultConfig())
}

// Sanitize replaces every invalid value with the matching value from
// fallback and returns one ConfigError per replaced key. A grid is never
// left with a non-positive dimension.
func (c *Config) Sanitize(fallback *Config) domain.ConfigErrors {
	var errs domain.ConfigErrors
	reject := func(key string, value any, reason string) {
		errs = append(errs, &domain.ConfigError{Key: key, Value: value, Reason: reason})
	}

	if c.Grid.Rows < 1 {
		reject("grid.rows", c.Grid.Rows, "must be at least 1")
		c.Grid.Rows = fallback.Grid.Rows
	}
	if c.Grid.Cols < 1 {
		reject("grid.cols", c.Grid.Cols, "must be at least 1")
		c.Grid.Cols = fallback.Grid.Cols
	}

	if !finite(c.Zoom.Factor) || c.Zoom.Factor < 1 || c.Zoom.Factor > MaxZoomFactor {
		reject("zoom.factor", c.Zoom.Factor, "must be between 1 and 20")
		c.Zoom.Factor = fallback.Zoom.Factor
	}
	if !finite(c.Zoom.Padding) || c.Zoom.Padding < 0 || c.Zoom.Padding > 10 {
		reject("zoom.padding", c.Zoom.Padding, "must be between 0 and 10")
		c.Zoom.Padding = fallback.Zoom.Padding
	}
	if !oneOf(c.Zoom.Interpolation, validInterpolations) {
		reject("zoom.interpolation", c.Zoom.Interpolation, "must be one of "+strings.Join(validInterpolations, ", "))
		c.Zoom.Interpolation = fallback.Zoom.Interpolation
	}
	if c.Zoom.MaxViewportWidth < 0 {
		reject("zoom.max_viewport_width", c.Zoom.MaxViewportWidth, "must not be negative")
		c.Zoom.MaxViewportWidth = fallback.Zoom.MaxViewportWidth
	}
	if c.Zoom.MaxViewportHeight < 0 {
		reject("zoom.max_viewport_height", c.Zoom.MaxViewportHeight, "must not be negative")
		c.Zoom.MaxViewportHeight = fallback.Zoom.MaxViewportHeight
	}

	if !oneOf(c.Display.Policy, validPolicies) {
		reject("display.policy", c.Display.Policy, "must be one of "+strings.Join(validPolicies, ", "))
		c.Display.Policy = fallback.Display.Policy
	}
	if c.Display.Index < 0 {
		reject("display.index", c.Display.Index, "must not be negative")
		c.Display.Index = fallback.Display.Index
	}
	if !oneOf(c.Display.Server, validServers) {
		reject("display.server", c.Display.Server, "must be one of "+strings.Join(validServers, ", "))
		c.Display.Server = fallback.Display.Server
	}

	if !oneOf(c.Dispatch.Button, validButtons) {
		reject("dispatch.button", c.Dispatch.Button, "must be one of "+strings.Join(validButtons, ", "))
		c.Dispatch.Button = fallback.Dispatch.Button
	}
	if c.Dispatch.Cooldown < 0 {
		reject("dispatch.cooldown", c.Dispatch.Cooldown, "must not be negative")
		c.Dispatch.Cooldown = fallback.Dispatch.Cooldown
	}
	if c.Dispatch.Timeout <= 0 {
		reject("dispatch.timeout", c.Dispatch.Timeout, "must be positive")
		c.Dispatch.Timeout = fallback.Dispatch.Timeout
	}
	if !oneOf(c.Dispatch.Backend, validBackends) {
		reject("dispatch.backend", c.Dispatch.Backend, "must be one of "+strings.Join(validBackends, ", "))
		c.Dispatch.Backend = fallback.Dispatch.Backend
	}
	if c.Dispatch.RateLimit.Enabled {
		if c.Dispatch.RateLimit.MaxActionsPerMinute < 1 {
			reject("dispatch.rate_limit.max_actions_per_minute", c.Dispatch.RateLimit.MaxActionsPerMinute, "must be at least 1")
			c.Dispatch.RateLimit.MaxActionsPerMinute = fallback.Dispatch.RateLimit.MaxActionsPerMinute
		}
		if c.Dispatch.RateLimit.WindowSeconds < 1 {
			reject("dispatch.rate_limit.window_seconds", c.Dispatch.RateLimit.WindowSeconds, "must be at least 1")
			c.Dispatch.RateLimit.WindowSeconds = fallback.Dispatch.RateLimit.WindowSeconds
		}
	}

	if !oneOf(c.Surface.Type, validSurfaces) {
		reject("surface.type", c.Surface.Type, "must be one of "+strings.Join(validSurfaces, ", "))
		c.Surface.Type = fallback.Surface.Type
	}
	if !oneOf(c.Surface.FrameFormat, validFrameFormats) {
		reject("surface.frame_format", c.Surface.FrameFormat, "must be one of "+strings.Join(validFrameFormats, ", "))
		c.Surface.FrameFormat = fallback.Surface.FrameFormat
	}
	if c.Surface.FrameQuality < 1 || c.Surface.FrameQuality > 100 {
		reject("surface.frame_quality", c.Surface.FrameQuality, "must be between 1 and 100")
		c.Surface.FrameQuality = fallback.Surface.FrameQuality
	}
	if c.Surface.Web.Port < 0 || c.Surface.Web.Port > 65535 {
		reject("surface.web.port", c.Surface.Web.Port, "must be a TCP port")
		c.Surface.Web.Port = fallback.Surface.Web.Port
	}

	if !oneOf(c.Storage.Type, validStorageTypes) {
		reject("storage.type", c.Storage.Type, "must be one of "+strings.Join(validStorageTypes, ", "))
		c.Storage.Type = fallback.Storage.Type
	}

	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func oneOf(v string, valid []string) bool {
	for _, s := range valid {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
