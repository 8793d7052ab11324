package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alp-0zturk/Text-to-mesh/mesh"
)

// App encapsulates the application state and dependencies
type App struct {
	Tuning   *mesh.TuningConfig
	Analyzer *mesh.Analyzer

	// CLI Flags (effectively dependencies)
	ConfigFile   string
	InputFile    string
	OutputFile   string
	Description  string
	Seed         int64
	Texture      bool
	LegendFormat string
	ReportFile   string
	Publish      bool
	MeshID       string
}

// AppOptions carries parsed CLI flags into the App
type AppOptions struct {
	ConfigFile   string
	InputFile    string
	OutputFile   string
	Description  string
	Seed         int64
	Texture      bool
	LegendFormat string
	ReportFile   string
	Publish      bool
	MeshID       string
}

// NewApp creates a new App instance
func NewApp() *App {
	return &App{}
}

// ApplyOptions applies CLI options to the App instance
func (a *App) ApplyOptions(opts AppOptions) {
	a.ConfigFile = opts.ConfigFile
	a.InputFile = opts.InputFile
	a.OutputFile = opts.OutputFile
	a.Description = opts.Description
	a.Seed = opts.Seed
	a.Texture = opts.Texture
	a.LegendFormat = opts.LegendFormat
	a.ReportFile = opts.ReportFile
	a.Publish = opts.Publish
	a.MeshID = opts.MeshID
}

// LoadConfig loads the tuning config, falling back to defaults when the
// file does not exist.
func (a *App) LoadConfig() {
	if a.ConfigFile == "" {
		a.Tuning = mesh.DefaultTuning()
		return
	}
	cfg, err := mesh.LoadTuning(a.ConfigFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[CONFIG] %s not found, using defaults", a.ConfigFile)
			a.Tuning = mesh.DefaultTuning()
			return
		}
		log.Fatalf("Error loading config: %v", err)
	}
	a.Tuning = cfg
}

// Run performs the full analyze-and-colorize pipeline on the input mesh.
func (a *App) Run() {
	m, _, err := mesh.LoadOBJFile(a.InputFile)
	if err != nil {
		log.Fatalf("Error loading mesh: %v", err)
	}
	fmt.Printf("Loaded %s: %d vertices, %d faces\n", a.InputFile, len(m.Vertices), len(m.Faces))

	analyzer := mesh.NewAnalyzer(a.Tuning, a.Seed)
	analyzer.GenerateTexture = a.Texture

	result, err := analyzer.AnalyzeAndColorize(m, a.Description)
	if err != nil {
		log.Fatalf("Error analyzing mesh: %v", err)
	}

	fmt.Printf("Environment: %s\n", result.Environment)
	fmt.Printf("Clusters: %d\n", result.ClusterCount)
	for name, stat := range result.Info.Categories {
		fmt.Printf("  %s: %d vertices (%.1f%%)\n", name, stat.VertexCount, stat.Percentage)
	}

	if err := mesh.SaveOBJFile(a.OutputFile, m, result.Colors); err != nil {
		log.Fatalf("Error writing colored mesh: %v", err)
	}
	fmt.Printf("Wrote colored mesh to %s\n", a.OutputFile)

	base := strings.TrimSuffix(a.OutputFile, filepath.Ext(a.OutputFile))

	if a.Texture && result.Texture != nil {
		a.writeTexture(base+"-texture.png", result)
	}

	switch a.LegendFormat {
	case "raster":
		a.writeRasterLegend(base+"-legend.png", result)
	case "vector":
		a.writeVectorLegend(base+"-legend.svg", result)
	case "none":
	default:
		log.Fatalf("Unknown legend format %q (raster, vector, none)", a.LegendFormat)
	}

	if a.ReportFile != "" {
		a.writeReport(result)
	}

	if a.Publish {
		a.publishReport(result)
	}
}

func (a *App) writeTexture(path string, result *mesh.Result) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Error creating texture file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, result.Texture); err != nil {
		log.Fatalf("Error encoding texture: %v", err)
	}
	fmt.Printf("Wrote texture map to %s\n", path)
}

func (a *App) writeRasterLegend(path string, result *mesh.Result) {
	img := mesh.RenderLegend(result.Info, 320)
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Error creating legend file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Error encoding legend: %v", err)
	}
	fmt.Printf("Wrote legend to %s\n", path)
}

func (a *App) writeVectorLegend(path string, result *mesh.Result) {
	legend := mesh.NewVectorLegend(result.Info)
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Error creating legend file: %v", err)
	}
	defer f.Close()
	if err := legend.RenderToSVG(f); err != nil {
		log.Fatalf("Error rendering legend: %v", err)
	}
	fmt.Printf("Wrote legend to %s\n", path)
}

func (a *App) writeReport(result *mesh.Result) {
	data, err := json.MarshalIndent(result.Info, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling report: %v", err)
	}
	if err := os.WriteFile(a.ReportFile, data, 0644); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}
	fmt.Printf("Wrote report to %s\n", a.ReportFile)
}

func (a *App) publishReport(result *mesh.Result) {
	client, err := mesh.ConnectMQTT(a.Tuning.MQTT)
	if err != nil {
		log.Fatalf("Error connecting to MQTT: %v", err)
	}
	defer client.Disconnect(250)

	pub := mesh.NewReportPublisher(client, a.Tuning.MQTT.PublishPrefix)
	meshID := a.MeshID
	if meshID == "" {
		meshID = strings.TrimSuffix(filepath.Base(a.InputFile), filepath.Ext(a.InputFile))
	}
	if err := pub.PublishReport(meshID, result.Info); err != nil {
		log.Fatalf("Error publishing report: %v", err)
	}
	fmt.Printf("Published report for %s\n", meshID)
}
