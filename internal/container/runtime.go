// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and execution.
// It launches a headless Chrome container that exposes the DevTools
// protocol, for running the registry browser without a local Chrome
// install.
package container

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// DefaultBrowserImage is the headless Chrome image started for remote
	// browser sessions.
	DefaultBrowserImage = "chromedp/headless-shell:latest"

	// devtoolsPort is the DevTools listen port inside the container.
	devtoolsPort = 9222
)

// Runtime provides container operations: checking availability, verifying
// images, and starting and stopping browser containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// StartBrowser runs the image detached with the DevTools port published
	// on hostPort and returns the container ID.
	StartBrowser(image string, hostPort int) (string, error)

	// Stop stops the container with the given ID.
	Stop(containerID string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOutput(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) StartBrowser(image string, hostPort int) (string, error) {
	args := []string{
		"run", "-d", "--rm",
		"-p", fmt.Sprintf("%d:%d", hostPort, devtoolsPort),
		image,
	}
	id, err := r.exec.RunOutput(r.bin, args...)
	if err != nil {
		return "", fmt.Errorf("starting %s container %s: %w", r.bin, image, err)
	}
	return id, nil
}

func (r *runtime) Stop(containerID string) error {
	if err := r.exec.RunSilent(r.bin, "stop", containerID); err != nil {
		return fmt.Errorf("stopping %s container %s: %w", r.bin, containerID, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}

// DevToolsURL returns the DevTools endpoint for a browser container whose
// port was published on hostPort.
func DevToolsURL(hostPort int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", hostPort)
}
