// Package cli provides command definitions for skillmeta.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/skillmeta/internal/config"
	"github.com/klauern/skillmeta/internal/prompt"
	"github.com/klauern/skillmeta/internal/skill"
	"github.com/klauern/skillmeta/internal/ui"
	"github.com/klauern/skillmeta/internal/ui/tui"
	"github.com/klauern/skillmeta/internal/validation"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate skill directories against the metadata rules",
		UsageText: "skillmeta validate <dir> [<dir>...]",
		Description: `Validate one or more skill directories.

   Every rule is checked and all violations are reported, not just the
   first. The exit status is non-zero when any directory is invalid.

   Examples:
     skillmeta validate ./skills/git-workflows
     skillmeta validate ./skills/*/`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() == 0 {
				return errors.New("validate requires at least one skill directory")
			}

			invalid := 0
			for _, dir := range args.Slice() {
				violations := validation.ValidateDir(dir)
				if len(violations) == 0 {
					fmt.Println(ui.StatusValid(dir))
					continue
				}
				invalid++
				fmt.Println(ui.StatusInvalid(dir))
				for _, v := range violations {
					fmt.Printf("  %s\n", v)
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d skill(s) failed validation", invalid, args.Len())
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a skill's properties",
		UsageText: "skillmeta show [options] <dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: yaml, json, or toml",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("show requires exactly one skill directory")
			}

			props, err := skill.ReadProperties(args.First())
			if err != nil {
				return err
			}

			format := cmd.String("format")
			if format == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				format = cfg.Output.Format
			}

			out, err := marshalProperties(props.ToMap(), format)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

// marshalProperties renders the external representation in the requested
// format.
func marshalProperties(m map[string]any, format string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(data) + "\n", nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return "", fmt.Errorf("marshal toml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected yaml, json, or toml)", format)
	}
}

func promptCommand() *cli.Command {
	return &cli.Command{
		Name:      "prompt",
		Usage:     "Render the available_skills block for agent instructions",
		UsageText: "skillmeta prompt [<dir>...]",
		Description: `Render skill metadata as the <available_skills> text block.

   With no arguments, every skill found under the configured search
   paths is rendered, in discovery order. Rendering is all-or-nothing:
   a single unreadable skill aborts the render.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			dirs := cmd.Args().Slice()
			if len(dirs) == 0 {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				discovered, err := skill.DiscoverAll(cfg.SkillsPaths)
				if err != nil {
					return err
				}
				for _, d := range discovered {
					dirs = append(dirs, d.Directory)
				}
			}

			block, err := prompt.Render(dirs)
			if err != nil {
				return err
			}
			fmt.Println(block)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List skills found under the configured search paths",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Browse skills in an interactive terminal UI",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			discovered, err := skill.DiscoverAll(cfg.SkillsPaths)
			if err != nil {
				return err
			}
			if len(discovered) == 0 {
				fmt.Println("No skills found")
				return nil
			}

			if cmd.Bool("interactive") {
				return tui.RunSkillList(discovered)
			}

			fmt.Println(ui.Header(fmt.Sprintf("%-30s %s", "NAME", "DESCRIPTION")))
			for _, d := range discovered {
				fmt.Printf("%-30s %s\n", ui.Bold(d.Properties.Name), d.Properties.Description)
				fmt.Printf("%-30s %s\n", "", ui.Dim(d.Manifest))
			}
			return nil
		},
	}
}
