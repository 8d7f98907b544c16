package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-glossy-pathtracer/pkg/config"
	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/loaders"
	"github.com/df07/go-glossy-pathtracer/pkg/renderer"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
	"github.com/df07/go-glossy-pathtracer/web/server"
)

const defaultScene = "spec-balls"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		sceneFile string
		verbose   bool
	)

	rootCmd := &cobra.Command{
		Use:   "pathtracer [scene]",
		Short: "Monte Carlo path tracer for glossy sphere scenes",
		Long: `Renders a scene of spheres with emissive, diffuse and glossy materials
and writes the result as a PNG. The scene is a built-in name, the name of a
YAML file in the scene directory, or a path to a YAML file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			sceneName := defaultScene
			if len(args) == 1 {
				sceneName = args[0]
			}

			// --scene-file is always a path, whatever its name or extension
			var (
				s      *scene.Scene
				camera geometry.CameraConfig
			)
			if sceneFile != "" {
				sceneName = sceneFile
				s, camera, err = loaders.LoadScene(sceneFile)
			} else {
				s, camera, err = loaders.ResolveScene(sceneName, cfg.SceneDir)
			}
			if err != nil {
				return err
			}

			var logger core.Logger
			if verbose {
				logger = renderer.NewDefaultLogger()
			}
			return runRender(cmd, cfg, sceneName, s, camera, logger)
		},
	}

	defaults := config.DefaultConfig()
	flags := rootCmd.Flags()
	flags.IntP("width", "w", defaults.Width, "Width of rendered image, in pixels")
	flags.IntP("height", "H", defaults.Height, "Height of rendered image, in pixels")
	flags.Int("max-depth", defaults.MaxDepth, "Maximum bounce depth")
	flags.Int("spp", defaults.SamplesPerPixel, "Number of samples to gather per pixel")
	flags.IntP("threads", "j", defaults.Threads, "Number of render threads (0 = number of cores)")
	flags.StringP("output", "o", defaults.Output, "Output filename")
	flags.Int64("seed", defaults.Seed, "Random seed (0 = nondeterministic)")
	flags.Float64("gamma", defaults.Gamma, "Gamma applied when encoding (1 = linear)")
	flags.Int("tile-size", defaults.TileSize, "Tile edge length in pixels")
	flags.Float64("vfov", defaults.VFov, "Override the scene's vertical field of view in degrees")
	flags.StringVar(&sceneFile, "scene-file", "", "Render a YAML scene file instead of a named scene")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log worker and luminance statistics")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pathtracer.yaml or $HOME/.pathtracer/pathtracer.yaml)")
	rootCmd.PersistentFlags().String("scene-dir", defaults.SceneDir, "Directory searched for YAML scenes")

	rootCmd.AddCommand(
		scenesCmd(&cfgFile),
		initCmd(),
		serveCmd(&cfgFile),
	)

	return rootCmd
}

// runRender renders the scene and writes the PNG
func runRender(cmd *cobra.Command, cfg config.Config, sceneName string, s *scene.Scene, camera geometry.CameraConfig, logger core.Logger) error {
	opts := cfg.RenderOptions(camera)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Rendering %s at %dx%d %dspp with max depth %d\n",
		sceneName, opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxDepth)

	startTime := time.Now()
	buf, stats, err := renderer.NewRaytracer(s, opts, logger).Render()
	if err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	fmt.Fprintf(out, "Rendered in %gs\n", renderTime.Seconds())
	if logger != nil {
		logger.Printf("%d pixels, %.1f samples per pixel, %d tiles on %d workers\n",
			stats.TotalPixels, stats.AverageSamples(), stats.Tiles, stats.Workers)
	}

	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	w := bufio.NewWriter(file)
	if err := buf.WritePNG(w, cfg.Gamma); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("error writing PNG: %w", err)
	}
	return file.Close()
}

func scenesCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and YAML scenes in the scene directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, *cfgFile)
			if err != nil {
				return err
			}

			scenes, err := scene.ListAllScenes(cfg.SceneDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, info := range scenes {
				fmt.Fprintf(out, "%-28s %-8s %s\n", info.ID, info.Type, info.Description)
			}
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}
}

func serveCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetInt("port")

			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, *cfgFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Visit http://localhost:%d/api/scenes to list scenes\n", port)
			return server.NewServer(port, cfg.SceneDir).Start()
		},
	}

	cmd.Flags().Int("port", 8080, "Port to serve on")
	return cmd
}
