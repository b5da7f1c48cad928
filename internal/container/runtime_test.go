// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	const image = "minidocks/poppler:latest"

	docker := newDockerRuntime(&mockExecutor{
		runnableCmds: map[string]bool{"docker image inspect " + image: true},
	})
	if err := docker.ImageExists(image); err != nil {
		t.Errorf("docker: unexpected error: %v", err)
	}

	podman := newPodmanRuntime(&mockExecutor{})
	err := podman.ImageExists(image)
	if err == nil {
		t.Fatal("podman: expected error, got nil")
	}
	if !strings.Contains(err.Error(), image) {
		t.Errorf("error should mention image name, got: %v", err)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		pipeFunc func(string, []string, io.Reader, io.Writer, io.Writer) error
		wantOut  string
		wantErr  string
	}{
		{
			name: "passes image and command, pipes stdin to stdout",
			pipeFunc: func(name string, args []string, stdin io.Reader, stdout, _ io.Writer) error {
				want := "run --rm -i --network none tool:1 pdftotext - -"
				if got := strings.Join(args, " "); got != want {
					return errors.New("unexpected args: " + got)
				}
				data, _ := io.ReadAll(stdin)
				_, _ = stdout.Write([]byte("text of " + string(data)))
				return nil
			},
			wantOut: "text of pdf bytes",
		},
		{
			name: "failure includes container stderr",
			pipeFunc: func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
				_, _ = stderr.Write([]byte("Syntax Error: Couldn't find trailer dictionary\n"))
				return errors.New("exit status 1")
			},
			wantErr: "Couldn't find trailer dictionary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newDockerRuntime(&mockExecutor{runPipedFunc: tt.pipeFunc})
			var out bytes.Buffer
			err := rt.Run(context.Background(), "tool:1", []string{"pdftotext", "-", "-"}, strings.NewReader("pdf bytes"), &out)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != tt.wantOut {
				t.Errorf("got output %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	if got := newDockerRuntime(exec).Name(); got != "docker" {
		t.Errorf("docker runtime name = %q, want %q", got, "docker")
	}
	if got := newPodmanRuntime(exec).Name(); got != "podman" {
		t.Errorf("podman runtime name = %q, want %q", got, "podman")
	}
}
