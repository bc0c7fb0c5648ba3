// Copyright 2026 The Plank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"

	"github.com/plankhttp/plank/config"
)

// printBanner prints the startup banner. Colors are downsampled to the
// terminal's capabilities by colorprofile and stripped entirely when the
// output is not a TTY.
func printBanner(w io.Writer, cfg *config.Config) {
	cpw := colorprofile.NewWriter(w, os.Environ())

	art := figure.NewFigure("plank", "", false)
	gradient := []string{"12", "14", "10", "11"} // blue, cyan, green, yellow

	var styled strings.Builder
	for _, line := range art.Slicify() {
		if strings.TrimSpace(line) == "" {
			styled.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			styled.WriteString(style.Render(string(char)))
		}
		styled.WriteString("\n")
	}
	fmt.Fprintln(cpw, styled.String())

	info := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mode := "read-write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintln(cpw, info.Render(fmt.Sprintf("  %s → %s (%s)", cfg.Addr, cfg.Document, mode)))
	fmt.Fprintln(cpw)
}
