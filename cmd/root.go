package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jihoonly/matzip/pkg/client"
	"github.com/jihoonly/matzip/pkg/config"
	"github.com/jihoonly/matzip/pkg/headless"
	"github.com/jihoonly/matzip/pkg/logger"
	"github.com/jihoonly/matzip/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "matzip",
	Short: "Korean food assistant",
	Long:  `Terminal chat client for the matzip food assistant backend. Streams answers, shows which tools ran, and maps the restaurants it recommends.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Get()
		backend := client.NewClientWithTimeout(settings.Server.URL,
			time.Duration(settings.Server.Timeout)*time.Second)

		if viper.GetBool("headless") {
			runHeadless(backend)
			return
		}

		if err := tui.StartApp(backend); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runHeadless(backend *client.Client) {
	prompt := viper.GetString("prompt")
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "Error: headless mode requires --prompt")
		os.Exit(1)
	}

	images, err := encodeImages(viper.GetStringSlice("images"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error attaching image: %v\n", err)
		os.Exit(1)
	}

	run := headless.RunHeadless
	if viper.GetBool("no_stream") {
		run = headless.RunBlocking
	}

	if err := run(backend, prompt, images); err != nil {
		fmt.Fprintf(os.Stderr, "Error running headless mode: %v\n", err)
		os.Exit(1)
	}
}

func encodeImages(paths []string) ([]client.ImagePayload, error) {
	var payloads []client.ImagePayload
	for _, path := range paths {
		payload, err := client.EncodeImageFile(path)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .matzip/settings.yaml)")

	rootCmd.PersistentFlags().String("server", "", "backend server URL")
	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "execute a prompt directly without entering TUI")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))

	rootCmd.PersistentFlags().BoolP("headless", "H", false, "run without TUI (requires --prompt)")
	viper.BindPFlag("headless", rootCmd.PersistentFlags().Lookup("headless"))

	rootCmd.PersistentFlags().StringSliceP("image", "i", nil, "attach an image file to the prompt (repeatable, headless)")
	viper.BindPFlag("images", rootCmd.PersistentFlags().Lookup("image"))

	rootCmd.PersistentFlags().Bool("no-stream", false, "use the blocking endpoint instead of streaming")
	viper.BindPFlag("no_stream", rootCmd.PersistentFlags().Lookup("no-stream"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}
