package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/toolchat/toolchat/internal/dependency"
	"github.com/toolchat/toolchat/internal/schema"
)

var toolsFormat string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools advertised to the model",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().StringVarP(&toolsFormat, "format", "f", "text", "Output format: text, json or yaml")
}

type paramDoc struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

type toolDoc struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Parameters  []paramDoc `json:"parameters" yaml:"parameters"`
}

func runTools(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := dependency.NewTools(cfg)
	if err != nil {
		return err
	}
	return writeTools(c.OutOrStdout(), container.Registry().Descriptors(), toolsFormat)
}

func writeTools(w io.Writer, descs []schema.ToolDescriptor, format string) error {
	docs := make([]toolDoc, 0, len(descs))
	for _, d := range descs {
		doc := toolDoc{Name: d.Name, Description: d.Description, Parameters: []paramDoc{}}
		for _, p := range d.Params {
			doc.Parameters = append(doc.Parameters, paramDoc(p))
		}
		docs = append(docs, doc)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, d := range docs {
			fmt.Fprintf(w, "%s\n  %s\n", d.Name, d.Description)
			for _, p := range d.Parameters {
				req := ""
				if p.Required {
					req = " (required)"
				}
				fmt.Fprintf(w, "    - %s: %s%s %s\n", p.Name, p.Type, req, p.Description)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
