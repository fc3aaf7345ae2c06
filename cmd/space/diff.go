package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/signadot/space"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/libdiff"
	"github.com/signadot/space/parse"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if count(cfg.Order, cfg.Text, cfg.Cud) > 1 {
		return fmt.Errorf("%w: must specify at most one of -order -text -cud", cli.ErrUsage)
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		y1, err := getDocFile(cc, args[0], cfg.parseOpts(args[0])...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[0], err)
		}
		y2, err := getDocFile(cc, args[1], cfg.parseOpts(args[1])...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
		diff, err := diffInputs(cfg, cc.Out, y1, y2, false)
		if err != nil {
			return err
		}
		if diff {
			return cli.ExitCodeErr(1)
		}
		return nil
	}

	return diffLoop(cfg, cc)
}

func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	i := 0
	last := ir.New()
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	for {
		if i == cfg.LoopLim {
			break
		}
		cmd := exec.Command("sh", "-c", cfg.Loop)
		r, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
		}
		cmd.WaitDelay = cfg.LoopEvery
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command %q exited with an error: %w", cfg.Loop, err)
		}
		next, err := parse.Parse(d, cfg.parseOpts("-")...)
		if err != nil {
			return fmt.Errorf("error decoding command output: %w", err)
		}
		differs, err := diffInputs(cfg, cc.Out, last, next, diffCount > 0)
		if err != nil {
			return err
		}
		if differs {
			diffCount++
		}
		last = next
		<-ticker.C
		i++
	}
	return nil
}

// diffInputs writes the difference between a and b to w, if there is one,
// and reports whether there was.
func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node, sep bool) (bool, error) {
	var d *ir.Node
	switch {
	case cfg.Text:
		txt := libdiff.TextDiff(a, b)
		if txt == "" {
			return false, nil
		}
		d = ir.FromString(txt)
	case cfg.Order:
		d = space.DiffOrder(a, b)
	case cfg.Cud:
		if libdiff.Equal(a, b) {
			return false, nil
		}
		d = libdiff.Cud(a, b)
	default:
		d = space.Diff(a, b)
	}
	if d.IsTree() && d.Len() == 0 {
		return false, nil
	}
	if err := writeSep(w, sep); err != nil {
		return false, fmt.Errorf("unable to write separator: %w", err)
	}
	if cfg.Loop != "" {
		when := time.Now().Format(time.RFC3339Nano)
		if _, err := w.Write([]byte("# difference found at " + when + "\n")); err != nil {
			return false, err
		}
	}
	if cfg.Text {
		_, err := w.Write([]byte(d.String))
		return true, err
	}
	if err := cfg.output(w, d); err != nil {
		return false, err
	}
	return true, nil
}
