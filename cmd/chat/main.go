package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/dataset"
	"github.com/imkonsowa/restaurant-chatbot/logging"
	"github.com/imkonsowa/restaurant-chatbot/responder"
	"github.com/imkonsowa/restaurant-chatbot/session"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talks to the restaurant bot from the terminal",
	Long:  `chat loads the restaurant datasets and answers messages typed on stdin, one per line, keeping a single conversation session. Type "quit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if dir := viper.GetString("data"); dir != "" {
			cfg.Data.Dir = dir
		}
		if source := viper.GetString("source"); source != "" {
			cfg.Data.Source = source
		}
		cfg.Logging.Level = viper.GetString("log-level")
		logging.Setup(cfg.Logging)

		src, err := dataset.Open(*cfg)
		if err != nil {
			return err
		}
		ds, err := src.Load(cmd.Context())
		if err != nil {
			return err
		}

		renderer := responder.New(ds)
		if msg := viper.GetString("message"); msg != "" {
			return run(strings.NewReader(msg+"\n"), cmd.OutOrStdout(), renderer, viper.GetBool("explain"), false)
		}

		return run(cmd.InOrStdin(), cmd.OutOrStdout(), renderer, viper.GetBool("explain"), true)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file")

	rootCmd.Flags().String("data", "", "directory holding the JSON datasets (default from config)")
	rootCmd.Flags().String("source", "", "dataset source: files or postgres (default from config)")
	rootCmd.Flags().StringP("message", "m", "", "answer a single message and exit")
	rootCmd.Flags().Bool("explain", false, "print the intent and rule behind every answer")
	rootCmd.Flags().String("log-level", "error", "log level for the terminal session")

	viper.BindPFlags(rootCmd.Flags())
}

// run answers every line of in until EOF or "quit".
func run(in io.Reader, out io.Writer, renderer *responder.Renderer, explain, prompt bool) error {
	s := session.New(uuid.NewString(), time.Now())
	scanner := bufio.NewScanner(in)

	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}

		reply := renderer.Respond(line, s)
		if explain {
			fmt.Fprintf(out, "[%s %s]\n", reply.Intent, reply.Rule)
		}
		fmt.Fprintln(out, reply.Text)
		fmt.Fprintln(out)
	}
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
