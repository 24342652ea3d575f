// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container finds a local container runtime and runs one-shot
// filter containers that read a document on stdin and write the converted
// document to stdout.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime runs filter containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// its daemon answers an info command.
	Available(ctx context.Context) bool

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run starts a throwaway container from image with networking
	// disabled, copying stdin in and stdout out.
	Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// RunPiped keeps stderr so a failing container can explain itself.
func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// runtime implements Runtime for docker and podman, which differ only in
// the binary and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(ctx, r.bin, "info") == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", "--network", "none", image}
	if err := r.exec.RunPiped(ctx, r.bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{bin: binDocker, imageCheckCmd: []string{"image", "inspect"}, exec: exec}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{bin: binPodman, imageCheckCmd: []string{"image", "exists"}, exec: exec}
}

var defaultExec = &osExecutor{}

// DetectRuntime returns docker when it is usable, podman otherwise. The
// preferred name ("docker" or "podman") skips detection of the other one;
// an empty name tries both.
func DetectRuntime(ctx context.Context, preferred string) (Runtime, error) {
	return detectRuntime(ctx, defaultExec, preferred)
}

func detectRuntime(ctx context.Context, exec executor, preferred string) (Runtime, error) {
	var candidates []*runtime
	switch preferred {
	case "":
		candidates = []*runtime{newDockerRuntime(exec), newPodmanRuntime(exec)}
	case binDocker:
		candidates = []*runtime{newDockerRuntime(exec)}
	case binPodman:
		candidates = []*runtime{newPodmanRuntime(exec)}
	default:
		return nil, fmt.Errorf("unknown container runtime %q", preferred)
	}

	for _, rt := range candidates {
		if rt.Available(ctx) {
			return rt, nil
		}
	}

	names := make([]string, len(candidates))
	for i, rt := range candidates {
		names[i] = rt.bin
	}
	return nil, fmt.Errorf("no container runtime available: %s not found or not operational",
		strings.Join(names, " or "))
}
