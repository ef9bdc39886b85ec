// Package vars resolves placeholder tokens in configuration strings, using a
// static workspace token plus values obtained from the host's command
// provider (CMake Tools style commands).
package vars

import (
	"context"
	"fmt"
	"strings"
)

// WorkspaceToken is the always-available placeholder for the workspace root.
const WorkspaceToken = "${workspaceFolder}"

// CommandProvider exposes the host's named command surface. Command values
// may change between calls, so results are never cached across resolutions.
type CommandProvider interface {
	Commands(ctx context.Context) ([]string, error)
	Execute(ctx context.Context, name string) (string, error)
}

// providerTokens maps known provider commands to the tokens they feed, in
// fixed application order.
var providerTokens = []struct {
	Command string
	Token   string
}{
	{Command: "cmake.buildDirectory", Token: "${buildDirectory}"},
	{Command: "cmake.buildType", Token: "${buildType}"},
}

// Resolver substitutes placeholder tokens in raw configuration strings.
type Resolver struct {
	workspace string
	provider  CommandProvider
}

// NewResolver creates a Resolver for the given workspace root. The provider
// may be nil, in which case only the workspace token is substituted.
func NewResolver(workspace string, provider CommandProvider) *Resolver {
	return &Resolver{workspace: workspace, provider: provider}
}

// Resolve replaces every known token in raw. Provider-backed tokens are
// fetched once per call and applied after the workspace token. Each token is
// replaced repeatedly until no occurrence remains; a replacement value that
// contains its own token is an input precondition violation.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	tokens := []tokenValue{{token: WorkspaceToken, value: r.workspace}}

	if r.provider != nil {
		provided, err := r.providerValues(ctx)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, provided...)
	}

	resolved := raw
	for _, tv := range tokens {
		for strings.Contains(resolved, tv.token) {
			resolved = strings.ReplaceAll(resolved, tv.token, tv.value)
		}
	}
	return resolved, nil
}

type tokenValue struct {
	token string
	value string
}

// providerValues fetches the value of every registered provider command for
// one resolution pass.
func (r *Resolver) providerValues(ctx context.Context) ([]tokenValue, error) {
	commands, err := r.provider.Commands(ctx)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	registered := make(map[string]bool, len(commands))
	for _, name := range commands {
		registered[name] = true
	}

	var values []tokenValue
	for _, pt := range providerTokens {
		if !registered[pt.Command] {
			continue
		}
		value, err := r.provider.Execute(ctx, pt.Command)
		if err != nil {
			return nil, fmt.Errorf("execute %s: %w", pt.Command, err)
		}
		values = append(values, tokenValue{token: pt.Token, value: value})
	}
	return values, nil
}
