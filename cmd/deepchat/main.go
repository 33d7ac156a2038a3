package main

import (
	"fmt"
	"os"
	"sort"

	"deepchat/internal/app"
	"deepchat/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:     "deepchat",
		Short:   "Terminal chat client for local Ollama models with durable history",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger, closeLog := app.SetupLogger(cfg.LogFile, app.ParseLogLevel(cfg.LogLevel))
			defer closeLog()

			store, err := app.OpenChatStore(cfg.DataDir)
			if err != nil {
				return err
			}

			backend, err := app.NewOllamaBackend(cfg.OllamaHost)
			if err != nil {
				return err
			}

			logger.Info("starting", "data_dir", cfg.DataDir, "model", cfg.ChatModel)
			p := tea.NewProgram(tui.NewMainModel(store, backend, cfg, logger), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: "+app.DefaultConfigPath()+")")

	root.AddCommand(listCmd(&configPath), renameCmd(&configPath), deleteCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (app.Config, error) {
	if path == "" {
		path = app.DefaultConfigPath()
	}
	return app.LoadConfig(path)
}

func openStore(configPath string) (*app.ChatStore, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return app.OpenChatStore(cfg.DataDir)
}

func listCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*configPath)
			if err != nil {
				return err
			}
			infos := store.List()
			sort.Slice(infos, func(i, j int) bool { return infos[i].UpdatedAt.After(infos[j].UpdatedAt) })
			for _, info := range infos {
				fmt.Printf("%s  %-40s  %s\n", info.ID, info.Title, info.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func renameCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a chat session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*configPath)
			if err != nil {
				return err
			}
			return store.Rename(args[0], args[1])
		},
	}
}

func deleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*configPath)
			if err != nil {
				return err
			}
			return store.Delete(args[0])
		},
	}
}
