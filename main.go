package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

const assetsDir = "ui"

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := buildAssets(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "buddybreak wasm build failed: %v\n", err)
		os.Exit(1)
	}

	procs := []procConfig{
		{
			Name: "landing-server",
			Args: []string{
				"go", "run", "./cmd/landing-server",
				"--listen", "127.0.0.1:4173",
				"--assets", assetsDir,
				"--sink", "memory",
				"--log-level", "debug",
			},
		},
	}

	if err := runAll(ctx, procs); err != nil {
		fmt.Fprintf(os.Stderr, "buddybreak exited with error: %v\n", err)
		os.Exit(1)
	}
}

// buildAssets compiles the browser client and places the Go wasm loader next to it.
func buildAssets(ctx context.Context) error {
	build := procConfig{
		Name: "build-landing-wasm",
		Args: []string{"go", "build", "-o", filepath.Join(assetsDir, "main.wasm"), "./cmd/landing-wasm"},
		Env:  []string{"GOOS=js", "GOARCH=wasm"},
	}
	if err := command(ctx, build).Run(); err != nil {
		return fmt.Errorf("%s: %w", build.Name, err)
	}
	return copyWasmExec(ctx, filepath.Join(assetsDir, "wasm_exec.js"))
}

func copyWasmExec(ctx context.Context, dst string) error {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("go env GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(out))

	// Go 1.24 moved the loader from misc/wasm to lib/wasm.
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		data, err := os.ReadFile(filepath.Join(goroot, rel))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0o644)
	}
	return fmt.Errorf("wasm_exec.js not found under %s", goroot)
}

func command(ctx context.Context, cfg procConfig) *exec.Cmd {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = cfg.Dir
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}
	return cmd
}

// runAll starts every process and returns when they all exit, one fails, or ctx
// ends. After ctx ends the processes get a short grace period.
func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return errors.New("no processes configured")
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, cfg := range procs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := command(ctx, cfg).Run(); err != nil && ctx.Err() == nil {
				errCh <- fmt.Errorf("%s: %w", cfg.Name, err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	case err := <-errCh:
		return err
	case <-done:
	}
	return nil
}
