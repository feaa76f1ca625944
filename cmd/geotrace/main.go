package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/config"
	"github.com/san-kum/geotrace/internal/export"
	"github.com/san-kum/geotrace/internal/geodesic"
	"github.com/san-kum/geotrace/internal/integrators"
	"github.com/san-kum/geotrace/internal/metrics"
	"github.com/san-kum/geotrace/internal/physics"
	"github.com/san-kum/geotrace/internal/ray"
	"github.com/san-kum/geotrace/internal/storage"
	"github.com/san-kum/geotrace/internal/trace"
	"github.com/san-kum/geotrace/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	mass    float64
	spin    float64
	// Camera origin and ray direction
	ox, oy, oz float64
	dx, dy, dz float64
	fov        float64
	// Stepper
	absTol      float64
	relTol      float64
	minStep     float64
	maxStep     float64
	initialStep float64
	maxSteps    int
	// Render
	imgWidth  int
	imgHeight int
	workers   int
	outFile   string
	// Config file
	configFile string
	// Preset name
	preset string
)

// main is the entry point for the geotrace CLI; it registers commands and
// flags and executes the root command. It exits the process with status 1 if
// command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "geotrace",
		Short: "black hole geodesic ray tracer",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".geotrace", "data directory")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace a single ray and store its trajectory",
		RunE:  traceRay,
	}
	addPhysicsFlags(traceCmd)
	addRayFlags(traceCmd)
	traceCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	traceCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "trace a full image plane and write a PNG",
		RunE:  renderImage,
	}
	addPhysicsFlags(renderCmd)
	addRayFlags(renderCmd)
	renderCmd.Flags().Float64Var(&fov, "fov", config.DefaultFOV, "vertical field of view (degrees)")
	renderCmd.Flags().IntVar(&imgWidth, "width", config.DefaultImageSize, "image width")
	renderCmd.Flags().IntVar(&imgHeight, "height", config.DefaultImageSize, "image height")
	renderCmd.Flags().IntVar(&workers, "workers", 4, "parallel workers")
	renderCmd.Flags().StringVar(&outFile, "out", "render.png", "output file")
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	horizonsCmd := &cobra.Command{
		Use:   "horizons",
		Short: "print characteristic radii for a black hole",
		RunE:  printHorizons,
	}
	addPhysicsFlags(horizonsCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "trace a single ray with live visualization",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	addRayFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trajectory data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the equatorial trajectory projection as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare fixed and adaptive stepping on the same ray",
		RunE:  compareSteppers,
	}
	addPhysicsFlags(compareCmd)
	addRayFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tracing throughput",
		RunE:  benchTrace,
	}
	addPhysicsFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(traceCmd, renderCmd, horizonsCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, compareCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "black hole mass")
	cmd.Flags().Float64Var(&spin, "spin", 0.0, "black hole spin parameter")
}

func addRayFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&ox, "ox", 0.0, "camera origin x")
	cmd.Flags().Float64Var(&oy, "oy", 0.0, "camera origin y")
	cmd.Flags().Float64Var(&oz, "oz", 20.0, "camera origin z")
	cmd.Flags().Float64Var(&dx, "dx", 0.0, "ray direction x")
	cmd.Flags().Float64Var(&dy, "dy", 0.0, "ray direction y")
	cmd.Flags().Float64Var(&dz, "dz", -1.0, "ray direction z")
	cmd.Flags().Float64Var(&absTol, "abs-tol", config.DefaultAbsTol, "absolute error tolerance")
	cmd.Flags().Float64Var(&relTol, "rel-tol", config.DefaultRelTol, "relative error tolerance")
	cmd.Flags().Float64Var(&minStep, "min-step", config.DefaultMinStep, "minimum step size")
	cmd.Flags().Float64Var(&maxStep, "max-step", config.DefaultMaxStep, "maximum step size")
	cmd.Flags().Float64Var(&initialStep, "step", config.DefaultInitialStep, "initial step size")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "step budget per ray")
}

// applyConfig layers preset then config file under the CLI flags. A preset
// overwrites everything it covers; file values yield to flags the user set
// explicitly.
func applyConfig(cmd *cobra.Command) error {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		applyAll(cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("mass") {
			mass = cfg.Mass
		}
		if !cmd.Flags().Changed("spin") {
			spin = cfg.Spin
		}
		if !cmd.Flags().Changed("ox") {
			ox = cfg.Camera.Origin[0]
		}
		if !cmd.Flags().Changed("oy") {
			oy = cfg.Camera.Origin[1]
		}
		if !cmd.Flags().Changed("oz") {
			oz = cfg.Camera.Origin[2]
		}
		if !cmd.Flags().Changed("dx") {
			dx = cfg.Camera.Direction[0]
		}
		if !cmd.Flags().Changed("dy") {
			dy = cfg.Camera.Direction[1]
		}
		if !cmd.Flags().Changed("dz") {
			dz = cfg.Camera.Direction[2]
		}
		if cmd.Flags().Lookup("fov") != nil && !cmd.Flags().Changed("fov") {
			fov = cfg.Camera.FOV
		}
		if !cmd.Flags().Changed("abs-tol") {
			absTol = cfg.Stepper.AbsTol
		}
		if !cmd.Flags().Changed("rel-tol") {
			relTol = cfg.Stepper.RelTol
		}
		if !cmd.Flags().Changed("min-step") {
			minStep = cfg.Stepper.MinStep
		}
		if !cmd.Flags().Changed("max-step") {
			maxStep = cfg.Stepper.MaxStep
		}
		if !cmd.Flags().Changed("step") {
			initialStep = cfg.Stepper.InitialStep
		}
		if !cmd.Flags().Changed("max-steps") {
			maxSteps = cfg.Stepper.MaxSteps
		}
		if cmd.Flags().Lookup("width") != nil {
			if !cmd.Flags().Changed("width") {
				imgWidth = cfg.Render.Width
			}
			if !cmd.Flags().Changed("height") {
				imgHeight = cfg.Render.Height
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Render.Workers
			}
		}
	}

	return nil
}

func applyAll(cfg *config.Config) {
	mass = cfg.Mass
	spin = cfg.Spin
	ox, oy, oz = cfg.Camera.Origin[0], cfg.Camera.Origin[1], cfg.Camera.Origin[2]
	dx, dy, dz = cfg.Camera.Direction[0], cfg.Camera.Direction[1], cfg.Camera.Direction[2]
	fov = cfg.Camera.FOV
	absTol = cfg.Stepper.AbsTol
	relTol = cfg.Stepper.RelTol
	minStep = cfg.Stepper.MinStep
	maxStep = cfg.Stepper.MaxStep
	initialStep = cfg.Stepper.InitialStep
	maxSteps = cfg.Stepper.MaxSteps
	imgWidth = cfg.Render.Width
	imgHeight = cfg.Render.Height
	workers = cfg.Render.Workers
}

func rayConfig() ray.Config {
	return ray.Config{
		Step: geodesic.StepControl{
			AbsTol:     absTol,
			RelTol:     relTol,
			MinStep:    minStep,
			MaxStep:    maxStep,
			Safety:     0.9,
			MaxRetries: 20,
		},
		Initial:  initialStep,
		MaxSteps: maxSteps,
	}
}

// recorder samples the trajectory for persistence.
type recorder struct {
	lambdas []float64
	states  []geodesic.State
}

func (r *recorder) OnStep(x geodesic.State, lambda float64) {
	r.lambdas = append(r.lambdas, lambda)
	r.states = append(r.states, x.Clone())
}

func traceRay(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	bh := blackhole.New(mass, spin)
	origin := [3]float64{ox, oy, oz}
	dir := [3]float64{dx, dy, dz}

	s := ray.New(origin, dir, bh, rayConfig())
	s.AddMetric(metrics.NewClosestApproach())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewNullResidual(bh))

	rec := &recorder{}
	rec.OnStep(s.State(), s.Lambda())
	s.AddObserver(rec)

	model := "schwarzschild"
	if bh.Spin != 0 {
		model = "kerr"
	}

	fmt.Printf("tracing %s ray...\n", model)
	start := time.Now()
	status := s.Run()
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Mass:      bh.Mass,
		Spin:      bh.Spin,
		Origin:    origin,
		Direction: dir,
		Model:     model,
		Status:    status.String(),
		Escaped:   s.HasEscaped(),
		Steps:     s.StepCount(),
		Metrics:   s.MetricValues(),
	}

	runID, err := st.Save(meta, rec.lambdas, rec.states)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("status: %s (escaped: %v)\n", status, s.HasEscaped())
	fmt.Printf("steps: %d\n", s.StepCount())
	fmt.Printf("final radius: %.4f\n", s.Radius())
	fmt.Println("\nmetrics:")
	for name, val := range s.MetricValues() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func renderImage(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	bh := blackhole.New(mass, spin)
	cam := trace.Camera{
		Position: [3]float64{ox, oy, oz},
		FOV:      fov,
		Width:    imgWidth,
		Height:   imgHeight,
	}

	tr := trace.New(bh, cam, rayConfig(), workers)

	fmt.Printf("rendering %dx%d (%d workers)...\n", imgWidth, imgHeight, workers)
	start := time.Now()
	res, err := tr.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WritePNG(f, res, maxSteps); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("wrote %s\n", outFile)
	fmt.Printf("captured: %d  escaped: %d  max_steps: %d  diverged: %d\n",
		res.Count(trace.OutcomeCaptured),
		res.Count(trace.OutcomeEscaped),
		res.Count(trace.OutcomeMaxSteps),
		res.Count(trace.OutcomeDiverged),
	)

	return nil
}

func printHorizons(cmd *cobra.Command, args []string) error {
	bh := blackhole.New(mass, spin)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tRADIUS")
	fmt.Fprintf(w, "schwarzschild radius\t%.6f\n", bh.SchwarzschildRadius())
	fmt.Fprintf(w, "outer horizon\t%.6f\n", bh.OuterHorizon())
	fmt.Fprintf(w, "inner horizon\t%.6f\n", bh.InnerHorizon())
	fmt.Fprintf(w, "ergosphere (equatorial)\t%.6f\n", bh.ErgosphereRadius(math.Pi/2))
	fmt.Fprintf(w, "ergosphere (polar)\t%.6f\n", bh.ErgosphereRadius(0))
	fmt.Fprintf(w, "isco (prograde)\t%.6f\n", bh.ISCORadius())
	fmt.Fprintf(w, "photon sphere\t%.6f\n", bh.PhotonSphereRadius())
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	bh := blackhole.New(mass, spin)
	m := viz.NewModel([3]float64{ox, oy, oz}, [3]float64{dx, dy, dz}, bh, rayConfig())

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tMASS\tSPIN\tSTATUS\tESCAPED\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%s\t%v\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mass,
			run.Spin,
			run.Status,
			run.Escaped,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	plots := []struct {
		idx     int
		caption string
	}{
		{geodesic.R, "r (radial coordinate)"},
		{geodesic.Theta, "theta (polar angle)"},
		{geodesic.Phi, "phi (azimuthal angle)"},
		{geodesic.PR, "p_r (radial momentum)"},
	}

	for _, p := range plots {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][p.idx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	lambdas, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"lambda", "t", "r", "theta", "phi", "pt", "pr", "ptheta", "pphi"}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, x := range states {
		row[0] = strconv.FormatFloat(lambdas[i], 'g', -1, 64)
		for j, v := range x {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	bh := blackhole.New(meta.Mass, meta.Spin)
	captureRadius := bh.SchwarzschildRadius()
	if bh.Spin != 0 {
		captureRadius = bh.OuterHorizon()
	}

	svg := export.TrajectoryToSVG(states, captureRadius, 800)
	if svg == "" {
		return fmt.Errorf("trajectory too short to plot")
	}

	fmt.Print(svg)
	return nil
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	bh := blackhole.New(mass, spin)
	cfg := rayConfig()

	r := math.Sqrt(ox*ox + oy*oy + oz*oz)
	theta := math.Acos(oz / r)
	phi := math.Atan2(oy, ox)
	initial := geodesic.State{0, r, theta, phi, 1, dx, dy, dz}

	var sys geodesic.System
	captureRadius := bh.SchwarzschildRadius()
	if bh.Spin == 0 {
		sys = physics.NewSchwarzschild(bh)
	} else {
		sys = physics.NewKerr(bh, initial)
		captureRadius = bh.OuterHorizon()
	}
	escapeRadius := 100 * bh.Mass

	fmt.Printf("comparing steppers (mass=%.3f spin=%.3f)\n\n", bh.Mass, bh.Spin)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tOUTCOME\tSTEPS\tFINAL_R\tLAMBDA\tTIME")

	for _, name := range []string{"rk4", "rkf45"} {
		x := initial.Clone()
		lambda, h := 0.0, cfg.Initial
		outcome := "max_steps"
		steps := 0

		rk4 := integrators.NewRK4()
		rkf45 := integrators.NewRKF45(cfg.Step)

		start := time.Now()
		for ; steps < cfg.MaxSteps; steps++ {
			if x.Radius() <= captureRadius {
				outcome = "captured"
				break
			}
			if x.Radius() > escapeRadius {
				outcome = "escaped"
				break
			}
			if name == "rk4" {
				x = rk4.Step(sys, x, lambda, h)
				lambda += h
			} else {
				next, used, suggest, err := rkf45.StepAdaptive(sys, x, lambda, h)
				if err != nil {
					outcome = "diverged"
					break
				}
				x = next
				lambda += used
				h = suggest
			}
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%v\n",
			name, outcome, steps, x.Radius(), lambda, elapsed)
	}

	return w.Flush()
}

func benchTrace(cmd *cobra.Command, args []string) error {
	bh := blackhole.New(mass, spin)

	sizes := []int{8, 16, 32}
	budgets := []int{1000, 5000}

	fmt.Printf("benchmarking trace throughput (mass=%.3f spin=%.3f)\n\n", bh.Mass, bh.Spin)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tBUDGET\tRAYS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		for _, budget := range budgets {
			cam := trace.Camera{
				Position: [3]float64{0, 0, 20},
				FOV:      config.DefaultFOV,
				Width:    size,
				Height:   size,
			}
			cfg := ray.DefaultConfig()
			cfg.MaxSteps = budget

			tr := trace.New(bh, cam, cfg, 4)

			start := time.Now()
			res, err := tr.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := 0
			for _, p := range res.Pixels {
				steps += p.Steps
			}
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%d\t%v\t%.0f\n",
				size, size, budget, size*size, steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
