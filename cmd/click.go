package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	uuid "github.com/google/uuid"
	container "github.com/inference-gateway/gridpick/internal/container"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	cobra "github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click <x> <y>",
	Short: "Move the pointer to an absolute point and click",
	Long: `Issue one move-then-click through the configured dispatch backend, the same
way the picker does after a zoom pick. The dispatch is journaled.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", args[0], err)
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid y %q: %w", args[1], err)
		}

		cfg := currentConfig().Clone()
		if b, _ := cmd.Flags().GetString("button"); b != "" {
			if !domain.ValidMouseButton(b) {
				return fmt.Errorf("invalid button %q: must be left, middle or right", b)
			}
			cfg.Dispatch.Button = b
		}
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			cfg.Dispatch.Backend = container.BackendDryRun
		}

		services := container.NewServiceContainer(cfg, nil)
		services.DryRunOutput = cmd.OutOrStdout()
		defer closeServices(services)

		return dispatchClick(cmd.Context(), services, domain.Point{X: x, Y: y})
	},
}

func dispatchClick(ctx context.Context, services *container.ServiceContainer, p domain.Point) error {
	inj, err := services.GetInjector()
	if err != nil {
		return err
	}
	cfg := services.GetConfig()
	button := domain.ParseMouseButton(cfg.Dispatch.Button)

	start := time.Now()
	err = move(ctx, inj, p, cfg.Dispatch.Timeout)
	if err == nil {
		err = click(ctx, inj, p, button, cfg.Dispatch.Timeout)
	}

	journal, jerr := services.GetJournal()
	if jerr != nil {
		logger.Warn("Dispatch not journaled", "error", jerr)
	} else {
		rec := domain.DispatchRecord{
			ID:           uuid.New().String(),
			ActivationID: "cli",
			CellIndex:    -1,
			Point:        p,
			Button:       button.String(),
			Success:      err == nil,
			Duration:     time.Since(start),
			CreatedAt:    time.Now(),
		}
		if err != nil {
			rec.Error = err.Error()
		}
		if jerr := journal.Record(ctx, rec); jerr != nil {
			logger.Warn("Failed to journal dispatch", "error", jerr)
		}
	}
	return err
}

func move(ctx context.Context, inj domain.PointerInjector, p domain.Point, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := inj.Move(ctx, p.X, p.Y); err != nil {
		return &domain.InjectionError{Op: "move", Point: p, Err: err}
	}
	return nil
}

func click(ctx context.Context, inj domain.PointerInjector, p domain.Point, button domain.MouseButton, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := inj.Click(ctx, button); err != nil {
		return &domain.InjectionError{Op: "click", Point: p, Err: err}
	}
	return nil
}

func init() {
	clickCmd.Flags().StringP("button", "b", "", "mouse button: left, middle or right (default from config)")
	clickCmd.Flags().Bool("dry-run", false, "print the equivalent xdotool commands instead of clicking")
	rootCmd.AddCommand(clickCmd)
}
