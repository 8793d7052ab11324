package main

import (
	"flag"
	"fmt"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile   = flag.String("config", "config.yaml", "Path to tuning configuration file")
	inputFile    = flag.String("input", "", "Input OBJ mesh file")
	outputFile   = flag.String("output", "colored-mesh.obj", "Output OBJ file with vertex colors")
	description  = flag.String("description", "", "Text description driving semantics (e.g. \"alpine lake with forest\")")
	seed         = flag.Int64("seed", 42, "Random seed for clustering and color noise")
	texture      = flag.Bool("texture", false, "Also write a cylindrical texture map PNG")
	legendFormat = flag.String("legend", "none", "Legend output: raster, vector, or none")
	reportFile   = flag.String("report", "", "Write color report JSON to this path")
	publish      = flag.Bool("publish", false, "Publish color report over MQTT")
	meshID       = flag.String("mesh-id", "", "Mesh identifier for MQTT topics (default: input filename)")
)

func main() {
	flag.Parse()
	fmt.Printf("meshcolor version: %s\n", Version)

	if *inputFile == "" {
		fmt.Println("Usage: meshcolor -input mesh.obj -description \"alpine lake\" [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		return
	}

	app := NewApp()
	app.ApplyOptions(AppOptions{
		ConfigFile:   *configFile,
		InputFile:    *inputFile,
		OutputFile:   *outputFile,
		Description:  *description,
		Seed:         *seed,
		Texture:      *texture,
		LegendFormat: *legendFormat,
		ReportFile:   *reportFile,
		Publish:      *publish,
		MeshID:       *meshID,
	})
	app.LoadConfig()
	app.Run()
}
