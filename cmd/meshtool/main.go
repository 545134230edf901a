// meshtool is a CLI utility for inspecting meshes and viewer configuration.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/geoviewer/internal/config"
	"github.com/Faultbox/geoviewer/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "check":
		cmdCheck(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - geoviewer mesh and config utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>             Show mesh size, bounds and view radius
  check <file.obj>...         Parse meshes and report skipped statements
  config [-o path]            Write the default config (.yaml or .toml)

Examples:
  meshtool info bunny.obj
  meshtool check models/*.obj
  meshtool config -o ~/.config/geoviewer/config.toml`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <file.obj>")
		os.Exit(1)
	}

	mesh, err := scene.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := mesh.Bounds
	c := b.Center()
	fmt.Printf("Mesh:      %s\n", mesh.Name)
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Triangles: %d\n", mesh.Triangles())
	fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("Center:    (%.3f, %.3f, %.3f)\n", c[0], c[1], c[2])
	fmt.Printf("Radius:    %.3f\n", mesh.ViewRadius())
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool check <file.obj>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range args {
		if err := checkFile(path); err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func checkFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	mesh, warnings, err := scene.DecodeOBJ(f, filepath.Base(path))
	if err != nil {
		return err
	}
	fmt.Printf("ok   %s: %d triangles\n", path, mesh.Triangles())
	for _, w := range warnings {
		fmt.Printf("     %s\n", w)
	}
	return nil
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: user config dir)")
	fs.Parse(args)

	cfg := config.Default()
	var err error
	if *out == "" {
		err = cfg.Save()
		*out = filepath.Join(config.ConfigDir(), "config.yaml")
	} else {
		err = cfg.SaveTo(*out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)
}
