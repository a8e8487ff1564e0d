package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/source"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type evalOutput struct {
	Point      []float64     `json:"point"`
	Components []string      `json:"components"`
	Stress     domain.Stress `json:"stress"`
}

var evalCmd = &cobra.Command{
	Use:   "eval x y z",
	Short: "Evaluate the stress tensor of a source at one point",
	Long: `Evaluates the six stress components (Sxx, Sxy, Sxz, Syy, Syz, Szz) at (x, y, z)
and prints them as JSON.

The source is described with flags, or with --sources pointing to a YAML/JSON
list of sources that are superposed:

  strata eval 1 2 3 --type point --vector 1,0,0
  strata eval 0.3 0.3 1 --type triangle --vertices 0,0,0,1,0,0,0,1,0 --burgers 0,0,1e-6 --shear 30e9
  strata eval 0 0 2 --sources sources.yaml`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var at [3]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidCoordinates, a)
			}
			at[i] = v
		}

		specs, err := evalSpecs(cmd)
		if err != nil {
			return err
		}
		e, err := source.FromSpecs(specs)
		if err != nil {
			return err
		}

		out := evalOutput{
			Point:  at[:],
			Stress: e.Stress(domain.V(at[0], at[1], at[2])),
		}
		for _, c := range domain.AllComponents() {
			out.Components = append(out.Components, c.String())
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func evalSpecs(cmd *cobra.Command) ([]domain.SourceSpec, error) {
	if file, _ := cmd.Flags().GetString("sources"); file != "" {
		return readSpecs(file)
	}

	spec := domain.SourceSpec{}
	spec.Type, _ = cmd.Flags().GetString("type")
	spec.Position, _ = cmd.Flags().GetFloat64Slice("position")
	spec.Vector, _ = cmd.Flags().GetFloat64Slice("vector")
	spec.Burgers, _ = cmd.Flags().GetFloat64Slice("burgers")
	spec.Shear, _ = cmd.Flags().GetFloat64("shear")
	spec.Poisson, _ = cmd.Flags().GetFloat64("poisson")
	spec.Gauss, _ = cmd.Flags().GetInt("gauss")

	flat, _ := cmd.Flags().GetFloat64Slice("vertices")
	if len(flat) > 0 {
		if len(flat) != 9 {
			return nil, fmt.Errorf("%w: --vertices needs 9 values, got %d", domain.ErrInvalidSource, len(flat))
		}
		spec.Vertices = [][]float64{flat[0:3], flat[3:6], flat[6:9]}
	}

	if spec.Shear != 0 && !cmd.Flags().Changed("poisson") {
		spec.Poisson = domain.DefaultMaterial.Poisson
	}
	return []domain.SourceSpec{spec}, nil
}

// readSpecs reads a YAML or JSON list of sources, or a document with a "sources" key.
func readSpecs(path string) ([]domain.SourceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc, ok := raw.(map[string]any); ok {
		raw = doc["sources"]
	}

	var specs []domain.SourceSpec
	if err := source.Decode(raw, &specs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidSource, path, err)
	}
	return specs, nil
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().String("type", domain.SourceTypePoint, "Source type: point or triangle")
	evalCmd.Flags().Float64Slice("position", []float64{0, 0, 0}, "Point source position x,y,z")
	evalCmd.Flags().Float64Slice("vector", []float64{1, 0, 0}, "Point source displacement vector")
	evalCmd.Flags().Float64Slice("vertices", nil, "Triangle vertices as 9 comma separated values")
	evalCmd.Flags().Float64Slice("burgers", nil, "Triangle Burgers (slip) vector")
	evalCmd.Flags().Float64("shear", 0, "Shear modulus (default material when zero)")
	evalCmd.Flags().Float64("poisson", 0, "Poisson ratio")
	evalCmd.Flags().Int("gauss", 0, "Gauss points per triangle edge (default 8)")
	evalCmd.Flags().String("sources", "", "YAML/JSON file listing sources to superpose")
}
