/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/spatialfield/fmesher/InputParameters"
	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/mesh1d"
	"github.com/spatialfield/fmesher/mesh2d"
	"github.com/spatialfield/fmesher/projector"
)

// ProjectCmd represents the project command
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Evaluate a coefficient vector at the query locations of a job file",
	Long: `
Builds the mesh and the sparse projection operator for the query locations in
a YAML job file, applies the coefficient vector from the job, and prints one
value per query,

fmesher project -J job.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		jobFile, err := cmd.Flags().GetString("jobFile")
		if err != nil {
			panic(err)
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}
		ip := processJob(jobFile)
		runProject(ip)
	},
}

func init() {
	rootCmd.AddCommand(ProjectCmd)
	ProjectCmd.Flags().StringP("jobFile", "J", "", "YAML file with locations, queries and coefficients")
}

func runProject(ip *InputParameters.MeshParameters) {
	var (
		m   projector.Mesh
		err error
	)
	switch ip.Dimension {
	case 1:
		var knots []float64
		var opts mesh1d.Options
		if knots, opts, err = ip.Mesh1DOptions(); err == nil {
			m, err = mesh1d.New(knots, opts)
		}
	case 2:
		var opts mesh2d.Options
		var locs []geometry.Point
		if locs, opts, err = ip.Mesh2DOptions(); err == nil {
			m, err = mesh2d.New(locs, opts)
		}
	default:
		err = fmt.Errorf("unsupported Dimension %d, want 1 or 2", ip.Dimension)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	queries, err := ip.QueryPoints()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	policy, err := ip.Policy()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	proj, err := projector.New(m, queries, policy)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if len(ip.Coefficients) != m.NodeCount() {
		fmt.Printf("error: job supplies %d coefficients, mesh has %d nodes\n",
			len(ip.Coefficients), m.NodeCount())
		os.Exit(1)
	}
	values, err := proj.Apply(ip.Coefficients)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	for i, v := range values {
		fmt.Printf("query %d: %v -> %g\n", i, queries[i], v)
	}
}
