package injector

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// DryRunInjector prints the equivalent xdotool commands instead of moving
// the pointer
type DryRunInjector struct {
	mu  sync.Mutex
	out io.Writer
}

var _ domain.PointerInjector = (*DryRunInjector)(nil)

// NewDryRunInjector writes commands to out
func NewDryRunInjector(out io.Writer) *DryRunInjector {
	return &DryRunInjector{out: out}
}

// Move prints `xdotool mousemove x y`
func (d *DryRunInjector) Move(ctx context.Context, x, y int) error {
	return d.print(MoveArgs(x, y))
}

// Click prints `xdotool click N`
func (d *DryRunInjector) Click(ctx context.Context, button domain.MouseButton) error {
	return d.print(ClickArgs(button))
}

func (d *DryRunInjector) print(args []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := fmt.Fprintf(d.out, "xdotool %s\n", strings.Join(args, " "))
	return err
}
