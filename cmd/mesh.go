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
	"github.com/spatialfield/fmesher/mesh1d"
	"github.com/spatialfield/fmesher/mesh2d"
)

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Build a mesh from a YAML job file and print its summary",
	Long: `
Builds a 1D knot mesh or a 2D constrained Delaunay mesh from the locations,
boundary and resolution parameters in a YAML job file,

fmesher mesh -J job.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		jobFile, err := cmd.Flags().GetString("jobFile")
		if err != nil {
			panic(err)
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}
		ip := processJob(jobFile)
		ip.Print()
		switch ip.Dimension {
		case 1:
			runMesh1D(ip)
		case 2:
			runMesh2D(ip)
		default:
			fmt.Printf("error: unsupported Dimension %d, want 1 or 2\n", ip.Dimension)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("jobFile", "J", "", "YAML file with locations, boundary and resolution parameters")
}

func processJob(jobFile string) (ip *InputParameters.MeshParameters) {
	if len(jobFile) == 0 {
		fmt.Println("error: must supply a job file (-J, --jobFile) in YAML format")
		exampleFile := `
########################################
Title: "Scallop survey"
Dimension: 2
Locations: [[0, 0], [1, 0], [1, 1], [0, 1], [0.4, 0.6]]
MaxEdge: 0.3
MaxEdgeExtension: 0.6
Cutoff: 0.01
Offset: 0.5
Queries: [[0.5, 0.5], [0.25, 0.75]]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(jobFile)
	if err != nil {
		panic(err)
	}
	ip = &InputParameters.MeshParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func runMesh1D(ip *InputParameters.MeshParameters) {
	knots, opts, err := ip.Mesh1DOptions()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	m, err := mesh1d.New(knots, opts)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	x0, x1 := m.Domain()
	sl, sr := m.SupportKnots()
	fmt.Printf("%d\t\t= nodes\n", m.NodeCount())
	fmt.Printf("%d\t\t= elements\n", m.ElementCount())
	fmt.Printf("[%g, %g]\t= domain\n", x0, x1)
	fmt.Printf("%d + %d\t\t= support knots (left + right)\n", sl, sr)
	fmt.Printf("[%v, %v]\t= boundary\n", m.BoundaryKind(0), m.BoundaryKind(1))
}

func runMesh2D(ip *InputParameters.MeshParameters) {
	locs, opts, err := ip.Mesh2DOptions()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	m, err := mesh2d.New(locs, opts)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var nInterior, nBoundary int
	var longest float64
	for k := 0; k < m.ElementCount(); k++ {
		if m.Zone(k) == mesh2d.Interior {
			nInterior++
		}
		if l := m.LongestEdge(k); l > longest {
			longest = l
		}
	}
	for i := 0; i < m.NodeCount(); i++ {
		if m.IsBoundaryNode(i) {
			nBoundary++
		}
	}
	fmt.Printf("%d\t\t= nodes (%d on boundary)\n", m.NodeCount(), nBoundary)
	fmt.Printf("%d\t\t= triangles (%d interior, %d extension)\n",
		m.ElementCount(), nInterior, m.ElementCount()-nInterior)
	fmt.Printf("%8.5f\t= longest edge\n", longest)
}
